package fntpack

import (
	"encoding/binary"
	"fmt"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
)

// serviceCode is the reserved codepoint never carried in the glyph list.
const serviceCode = 0xFFFF

// Options configures one repack.
type Options struct {
	// Base supplies the original container bytes when the model does not
	// embed them. When both are present, Base wins.
	Base []byte
}

// Result is the outcome of a successful repack.
type Result struct {
	Output        []byte // the patched container
	PatchedWidths int    // width triples overwritten
	PatchedPairs  int    // codepoint mapping values overwritten with a new value
	Warnings      []Warning
}

// Repack patches the model's edits onto a copy of the original container
// bytes. The base is parsed once to recover the recorded byte offsets of
// every patchable range; all capacity checks run before the first write,
// so a failing repack leaves no partial output.
func Repack(doc *fntmodel.Document, opts Options) (*Result, error) {
	base := opts.Base
	if base == nil {
		var ok bool
		if base, ok = doc.BaseBytes(); !ok {
			return nil, ErrMissingBase
		}
	}
	c, err := fnt.Parse(base)
	if err != nil {
		return nil, err
	}
	tracer().Infof("repack: %s container, platform %s", c.Signature, c.Platform)

	widths := modelWidths(doc)
	mapping := modelMapping(doc)
	if err := checkCapacity(c, widths, mapping); err != nil {
		return nil, err
	}

	res := &Result{Output: append([]byte(nil), base...)}
	patchFontInfo(res.Output, c, &doc.Info)
	patchSheetLayout(res.Output, c, &doc.Layout)
	res.PatchedWidths = patchWidths(res.Output, c, widths)
	res.PatchedPairs = patchMapping(res.Output, c, mapping, res)
	tracer().Infof("repack: %d width triple(s), %d mapping value(s) patched",
		res.PatchedWidths, res.PatchedPairs)
	return res, nil
}

// modelWidths collects the width triples the model defines, keyed by glyph
// index, with values clamped to their stored ranges.
func modelWidths(doc *fntmodel.Document) map[uint16]fnt.WidthEntry {
	widths := make(map[uint16]fnt.WidthEntry)
	for i := range doc.Glyphs {
		g := &doc.Glyphs[i]
		if g.Width == nil || g.Index < 0 || g.Index > 0xFFFF {
			continue
		}
		widths[uint16(g.Index)] = fnt.WidthEntry{
			Left:  int8(clamp(g.Width.Left, -128, 127)),
			Glyph: uint8(clamp(g.Width.Glyph, 0, 255)),
			Char:  uint8(clamp(g.Width.Char, 0, 255)),
		}
	}
	return widths
}

// modelMapping collects the codepoint to glyph-index pairs the model
// defines.
func modelMapping(doc *fntmodel.Document) map[uint32]int16 {
	mapping := make(map[uint32]int16)
	for i := range doc.Glyphs {
		g := &doc.Glyphs[i]
		code, ok := g.CodepointOf()
		if !ok || code == serviceCode {
			continue
		}
		if g.Index < -1 || g.Index > 0x7FFF {
			continue
		}
		mapping[code] = int16(g.Index)
	}
	return mapping
}

// checkCapacity rejects edits that in-place patching cannot express:
// width entries outside every CWDH block range, and codepoints no CMAP
// block recognizes.
func checkCapacity(c *fnt.Container, widths map[uint16]fnt.WidthEntry, mapping map[uint32]int16) error {
	for index := range widths {
		if !c.Widths.Covers(index) {
			return &CapacityError{
				Chain:  fnt.TagCWDH,
				Detail: fmt.Sprintf("glyph index %d is outside every width block range", index),
			}
		}
	}
	blocks := c.CMap.Blocks()
	for code := range mapping {
		if !codeHasSlot(blocks, code) {
			return &CapacityError{
				Chain:  fnt.TagCMAP,
				Detail: fmt.Sprintf("codepoint %s has no slot in any mapping block", fntmodel.FormatCodepoint(code)),
			}
		}
	}
	return nil
}

func codeHasSlot(blocks []fnt.CodeBlock, code uint32) bool {
	for i := range blocks {
		b := &blocks[i]
		switch b.Method {
		case fnt.MapDirect, fnt.MapTable:
			if code >= b.Begin && code <= b.End {
				return true
			}
		case fnt.MapScan:
			for _, pair := range b.Pairs {
				if pair.Code == code {
					return true
				}
			}
		}
	}
	return false
}

// FINF field positions relative to the section payload, for the two
// layout variants. Only these scalars are on the repack allow-list; the
// section pointers that follow are never touched.
type finfField struct {
	rel  int
	wide bool // 16-bit field
}

var finfModernFields = map[string]finfField{
	"type":          {0, false},
	"height":        {1, false},
	"width":         {2, false},
	"ascent":        {3, false},
	"line_feed":     {4, true},
	"alter_index":   {6, true},
	"default_left":  {8, false},
	"default_glyph": {9, false},
	"default_char":  {10, false},
	"char_encoding": {11, false},
}

var finfLegacyFields = map[string]finfField{
	"type":          {0, false},
	"line_feed":     {1, false},
	"alter_index":   {2, true},
	"default_left":  {4, false},
	"default_glyph": {5, false},
	"default_char":  {6, false},
	"char_encoding": {7, false},
	"height":        {20, false},
	"width":         {21, false},
	"ascent":        {22, false},
}

func patchFontInfo(buf []byte, c *fnt.Container, info *fntmodel.FontInfoRecord) {
	fields := finfModernFields
	if c.Info.OldCtrLayout {
		fields = finfLegacyFields
	}
	values := map[string]int{
		"type":          info.Type,
		"height":        info.Height,
		"width":         info.Width,
		"ascent":        info.Ascent,
		"line_feed":     info.LineFeed,
		"alter_index":   info.AlterIndex,
		"default_left":  info.DefaultLeft,
		"default_glyph": info.DefaultGlyph,
		"default_char":  info.DefaultChar,
		"char_encoding": info.CharEncoding,
	}
	base := c.Info.PayloadOffset
	for name, field := range fields {
		v := values[name]
		if field.wide {
			c.Order.PutUint16(buf[base+field.rel:], uint16(clamp(v, 0, 0xFFFF)))
		} else {
			buf[base+field.rel] = uint8(clamp(v, 0, 255))
		}
	}
}

// TGLP fields safe to patch in place: cell geometry and baseline. The
// structural fields (sheet count, sizes, offsets) would require
// relocation and stay untouched.
func patchSheetLayout(buf []byte, c *fnt.Container, layout *fntmodel.SheetLayoutRecord) {
	base := c.Layout.PayloadOffset
	buf[base+0] = uint8(clamp(layout.CellWidth, 0, 255))
	buf[base+1] = uint8(clamp(layout.CellHeight, 0, 255))
	buf[base+3] = uint8(clamp(layout.MaxCharWidth, 0, 255))
	c.Order.PutUint16(buf[base+8:], uint16(clamp(layout.Baseline, 0, 0xFFFF)))
}

func patchWidths(buf []byte, c *fnt.Container, widths map[uint16]fnt.WidthEntry) int {
	patched := 0
	for _, block := range c.Widths.Blocks() {
		for index := block.First; ; index++ {
			if w, ok := widths[index]; ok {
				off := block.EntryOffset + 3*int(index-block.First)
				if buf[off] != uint8(w.Left) || buf[off+1] != w.Glyph || buf[off+2] != w.Char {
					patched++
					tracer().Debugf("width entry %d: left=%d glyph=%d char=%d",
						index, w.Left, w.Glyph, w.Char)
				}
				buf[off] = uint8(w.Left)
				buf[off+1] = w.Glyph
				buf[off+2] = w.Char
			}
			if index == block.Last {
				break
			}
		}
	}
	return patched
}

// patchMapping writes the model's codepoint mapping into the existing
// CMAP blocks. A code is patched only in the first block that recognizes
// it, matching resolution order; slots shadowed by an earlier block keep
// their original bytes, as do codes the model does not define. An
// unedited model therefore repacks to an identical buffer.
func patchMapping(buf []byte, c *fnt.Container, mapping map[uint32]int16, res *Result) int {
	patched := 0
	consumed := make(map[uint32]bool)
	for _, block := range c.CMap.Blocks() {
		switch block.Method {
		case fnt.MapTable:
			for i, old := range block.Entries {
				code := block.Begin + uint32(i)
				if consumed[code] {
					continue
				}
				index, ok := mapping[code]
				if !ok {
					continue
				}
				consumed[code] = true
				putInt16(buf, c.Order, block.PayloadOffset+2*i, index)
				if index != old {
					patched++
					tracer().Debugf("mapping %s: glyph %d (was %d)",
						fntmodel.FormatCodepoint(code), index, old)
				}
			}
		case fnt.MapScan:
			for _, pair := range block.Pairs {
				if consumed[pair.Code] {
					continue
				}
				index, ok := mapping[pair.Code]
				if !ok {
					continue
				}
				consumed[pair.Code] = true
				putInt16(buf, c.Order, pair.IndexOffset, index)
				if index != pair.Index {
					patched++
					tracer().Debugf("mapping %s: glyph %d (was %d)",
						fntmodel.FormatCodepoint(pair.Code), index, pair.Index)
				}
			}
		case fnt.MapDirect:
			patched += patchDirectBlock(buf, c.Order, &block, mapping, consumed, res)
		}
	}
	return patched
}

// patchDirectBlock rewrites a Direct block's base offset when the model's
// edits stay arithmetic over the whole range. Non-uniform edits cannot be
// expressed by this encoding and are skipped with a warning. The block
// consumes every mapped code in its range either way: resolution would
// stop here, so later blocks must not be patched for them.
func patchDirectBlock(buf []byte, order binary.ByteOrder, block *fnt.CodeBlock, mapping map[uint32]int16, consumed map[uint32]bool, res *Result) int {
	implied := 0
	seen := false
	uniform := true
	for code := block.Begin; code <= block.End; code++ {
		if consumed[code] {
			continue
		}
		index, ok := mapping[code]
		if !ok {
			continue
		}
		consumed[code] = true
		offset := int(index) - int(code-block.Begin)
		if !seen {
			implied = offset
			seen = true
		} else if offset != implied {
			uniform = false
		}
	}
	if !uniform {
		res.Warnings = append(res.Warnings, Warning{
			Sheet: -1,
			Issue: fmt.Sprintf("Direct mapping block at 0x%X cannot express non-arithmetic edits, skipped", block.Offset),
		})
		return 0
	}
	if !seen {
		return 0
	}
	if implied < 0 || implied > 0xFFFF {
		res.Warnings = append(res.Warnings, Warning{
			Sheet: -1,
			Issue: fmt.Sprintf("Direct mapping block at 0x%X cannot encode implied offset %d, skipped", block.Offset, implied),
		})
		return 0
	}
	order.PutUint16(buf[block.PayloadOffset:], uint16(implied))
	if uint16(implied) != block.Base {
		tracer().Debugf("mapping block at 0x%X: base offset %d (was %d)",
			block.Offset, implied, block.Base)
		return int(block.End-block.Begin) + 1
	}
	return 0
}

func putInt16(buf []byte, order binary.ByteOrder, off int, v int16) {
	order.PutUint16(buf[off:], uint16(v))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
