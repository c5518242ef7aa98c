package fnt

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
)

// WidthEntry is one per-glyph width triple from a CWDH block.
type WidthEntry struct {
	Left  int8  // signed left bearing
	Glyph uint8 // glyph advance
	Char  uint8 // character advance
}

// WidthBlock records the extent of one CWDH chain block: the contiguous
// glyph index range it covers and the byte offset of its first entry.
// Blocks are ordered and non-overlapping; the repacker patches entries at
// EntryOffset + 3*(index-First).
type WidthBlock struct {
	Offset      int    // offset of the CWDH tag
	First, Last uint16 // inclusive glyph index range
	EntryOffset int    // offset of the first width triple
}

// WidthTable is the decoded CWDH chain. Glyph indices outside all block
// ranges have no entry; callers fall back to the FontInfo defaults.
type WidthTable struct {
	blocks   []WidthBlock
	entries  map[uint16]WidthEntry
	coverage bitset.BitSet
}

// widthBlockNextField is the distance from a CWDH block start to its
// next-offset field: tag(4) + size(4) + first(2) + last(2).
const widthBlockNextField = 12

// parseWidthChain decodes all CWDH blocks starting at the resolved chain
// head offset.
func parseWidthChain(data binarySegm, order binary.ByteOrder, start int) (*WidthTable, error) {
	offsets, err := walkChain(data, order, start, TagCWDH, widthBlockNextField)
	if err != nil {
		return nil, err
	}
	wt := &WidthTable{entries: make(map[uint16]WidthEntry)}
	for _, off := range offsets {
		f := newFields(data, order, off+4)
		_ = f.u32() // section size
		first := f.u16()
		last := f.u16()
		_ = f.u32() // next offset, consumed by the walker
		if f.err != nil {
			return nil, errFormat(TagCWDH, off, "truncated block header")
		}
		if last < first {
			return nil, errFormat(TagCWDH, off, "invalid index range %d..%d", first, last)
		}
		block := WidthBlock{Offset: off, First: first, Last: last, EntryOffset: f.pos}
		count := int(last) - int(first) + 1
		for i := 0; i < count; i++ {
			entry := WidthEntry{
				Left:  f.i8(),
				Glyph: f.u8(),
				Char:  f.u8(),
			}
			if f.err != nil {
				return nil, errFormat(TagCWDH, off, "truncated width entries")
			}
			index := first + uint16(i)
			wt.entries[index] = entry
			wt.coverage.Set(uint(index))
		}
		wt.blocks = append(wt.blocks, block)
	}
	tracer().Debugf("CWDH: %d width entries in %d block(s)", len(wt.entries), len(wt.blocks))
	return wt, nil
}

// WidthOf returns the width triple for a glyph index, or false if the
// index is outside every block's range.
func (wt *WidthTable) WidthOf(index uint16) (WidthEntry, bool) {
	if wt == nil {
		return WidthEntry{}, false
	}
	e, ok := wt.entries[index]
	return e, ok
}

// Covers reports whether a glyph index has a defined width entry.
func (wt *WidthTable) Covers(index uint16) bool {
	return wt != nil && wt.coverage.Test(uint(index))
}

// Coverage returns the set of glyph indices with defined width entries.
// The returned bitset is a copy.
func (wt *WidthTable) Coverage() *bitset.BitSet {
	if wt == nil {
		return bitset.New(0)
	}
	return wt.coverage.Clone()
}

// Len returns the number of defined width entries.
func (wt *WidthTable) Len() int {
	if wt == nil {
		return 0
	}
	return len(wt.entries)
}

// Blocks returns the ordered chain block descriptors.
func (wt *WidthTable) Blocks() []WidthBlock {
	if wt == nil {
		return nil
	}
	return wt.blocks
}
