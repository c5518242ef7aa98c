/*
Package fntmodel defines the editable intermediate model of a font
container: a JSON-serializable document carrying the header identity,
font-info and sheet-layout records, the full glyph list, references to the
exported sheet rasters, the display transforms applied to them, and
(optionally) the embedded original container bytes needed for a
bit-identical repack.

The model is what the graphical editor and the command-line front-end
exchange; neither of them ever touches raw container bytes directly.
*/
package fntmodel

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bffnt.model'
func tracer() tracing.Trace {
	return tracing.Select("bffnt.model")
}
