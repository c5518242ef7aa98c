/*
Package fntpack reconstructs a font container from an edited intermediate
model. It never serializes a container from scratch: repacking is a
copy-and-patch operation over the original bytes, overwriting only a fixed
allow-list of byte ranges recorded during parsing: the FINF scalars, the
safe TGLP fields, the CWDH width triples, and the CMAP index values.

Edits that would change the number of entries or blocks in a chain cannot
be expressed by in-place patching and fail fast with a CapacityError
before any byte is written. Rasters are never re-encoded; an optional
verification pass detects (and only warns about) raster edits that a
repack therefore does not apply.
*/
package fntpack

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bffnt.pack'
func tracer() tracing.Trace {
	return tracing.Select("bffnt.pack")
}
