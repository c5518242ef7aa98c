/*
Package fnt parses binary font containers of the BFFNT family, i.e. the
rasterized font assets used by a number of game engines. Three sibling
formats share one section grammar:

▪︎ FFNT: current containers, big-endian (Cafe) or little-endian (Ctr/NX)

▪︎ CFNT: older handheld containers

▪︎ RFNT (also seen byte-swapped as TNFR, and as RFNA): legacy containers

A container starts with a small header (signature, byte-order marker,
header size, version) and continues with tagged sections. The sections we
interpret are

	FINF  font info: global metrics, defaults, encoding selector, and
	      pointers to the first TGLP/CWDH/CMAP section
	TGLP  texture glyph data: sheet layout and the raw sheet bytes
	CWDH  character widths, a linked chain of index-range blocks
	CMAP  codepoint to glyph-index mapping, a linked chain of blocks
	      with one of three encodings each

Unknown sections are skipped by their declared size. Chained sections
(CWDH, CMAP) link to the next block of the same kind with an offset that is
stored with a fixed bias of 8 bytes, pointing past the section header; a
stored value of zero terminates the chain.

Parsing is strictly read-only: the container keeps the original byte buffer
and records the byte offset of every field that may later be patched, so
that a repack can overwrite edited values in place without re-serializing
anything.
*/
package fnt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bffnt.container'
func tracer() tracing.Trace {
	return tracing.Select("bffnt.container")
}
