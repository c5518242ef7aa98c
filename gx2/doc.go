/*
Package gx2 turns raw glyph-sheet bytes from a font container into viewable
rasters. Sheets are stored as block-compressed texture data in the GPU's
tiled memory order, so decoding is a two step process:

 1. deswizzle: reorder the 8-byte compression blocks from the GPU's
    macro-tiled addressing into linear row-major block order, and

 2. decode: expand each 4x4 BC4 block (two reference values plus sixteen
    3-bit palette indices) into channel samples, written to the raster's
    alpha channel and replicated into the color channels for preview.

Only the BC4 texel format is decoded. Sheets in any other format are
carried through in an explicit undecoded state instead of failing the
containing font; decoding never mutates the source bytes.
*/
package gx2

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bffnt.texture'
func tracer() tracing.Trace {
	return tracing.Select("bffnt.texture")
}
