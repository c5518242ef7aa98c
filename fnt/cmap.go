package fnt

import "encoding/binary"

// MappingMethod selects how one CMAP block encodes its codepoint range.
type MappingMethod uint16

const (
	MapDirect MappingMethod = iota // arithmetic offset onto the code range
	MapTable                       // dense array, one index per code
	MapScan                        // explicit (code, index) pairs
)

func (m MappingMethod) String() string {
	switch m {
	case MapDirect:
		return "Direct"
	case MapTable:
		return "Table"
	case MapScan:
		return "Scan"
	}
	return "unknown"
}

// NoGlyph is the sentinel index meaning "code recognized, intentionally no
// glyph". Table and Scan blocks store it as -1; Direct blocks produce it
// when the arithmetic result reaches the reserved value 0xFFFF.
const NoGlyph = -1

// directSentinel is the reserved "no glyph" value for Direct arithmetic.
const directSentinel = 0xFFFF

// ScanPair is one explicit (codepoint, glyph index) pair of a Scan block.
// IndexOffset pins the stored index bytes for in-place patching.
type ScanPair struct {
	Code        uint32
	Index       int16
	IndexOffset int
}

// CodeBlock is one decoded CMAP chain block.
type CodeBlock struct {
	Offset        int    // offset of the CMAP tag
	Begin, End    uint32 // inclusive code range (not reliable for Scan blocks)
	Method        MappingMethod
	PayloadOffset int // offset of the method-specific payload

	Base    uint16     // Direct: base glyph index for Begin
	Entries []int16    // Table: one index per code in range
	Pairs   []ScanPair // Scan: explicit pairs, possibly unsorted
}

// CodeMap is the decoded CMAP chain. Blocks are kept in chain order;
// resolution stops at the first block that recognizes a code, even when
// that block maps it to the NoGlyph sentinel.
type CodeMap struct {
	blocks []CodeBlock
	wide   bool // 32-bit code fields (NX)
}

// codeBlockNextField returns the distance from a CMAP block start to its
// next-offset field: tag(4) + size(4) + begin + end + method(2) + pad(2).
func codeBlockNextField(wide bool) int {
	if wide {
		return 20
	}
	return 16
}

// parseCodeChain decodes all CMAP blocks starting at the resolved chain
// head offset. Blocks with an unknown mapping method are kept as inert
// descriptors and reported as warnings.
func parseCodeChain(data binarySegm, order binary.ByteOrder, start int, wide bool, wc *warningCollector) (*CodeMap, error) {
	offsets, err := walkChain(data, order, start, TagCMAP, codeBlockNextField(wide))
	if err != nil {
		return nil, err
	}
	cm := &CodeMap{wide: wide}
	for _, off := range offsets {
		f := newFields(data, order, off+4)
		_ = f.u32() // section size
		var begin, end uint32
		if wide {
			begin = f.u32()
			end = f.u32()
		} else {
			begin = uint32(f.u16())
			end = uint32(f.u16())
		}
		method := MappingMethod(f.u16())
		f.skip(2) // padding
		_ = f.u32() // next offset, consumed by the walker
		if f.err != nil {
			return nil, errFormat(TagCMAP, off, "truncated block header")
		}
		block := CodeBlock{
			Offset:        off,
			Begin:         begin,
			End:           end,
			Method:        method,
			PayloadOffset: f.pos,
		}
		switch method {
		case MapDirect:
			block.Base = f.u16()
		case MapTable:
			if end < begin {
				return nil, errFormat(TagCMAP, off, "invalid code range %#x..%#x", begin, end)
			}
			count := int(end-begin) + 1
			block.Entries = make([]int16, count)
			for i := 0; i < count; i++ {
				block.Entries[i] = f.i16()
			}
		case MapScan:
			count := int(f.u16())
			if wide {
				f.skip(2)
			}
			block.Pairs = make([]ScanPair, 0, count)
			for i := 0; i < count; i++ {
				var pair ScanPair
				if wide {
					pair.Code = f.u32()
					pair.IndexOffset = f.pos
					pair.Index = f.i16()
					f.skip(2)
				} else {
					pair.Code = uint32(f.u16())
					pair.IndexOffset = f.pos
					pair.Index = f.i16()
				}
				block.Pairs = append(block.Pairs, pair)
			}
		default:
			wc.addWarning(TagCMAP, off, "unknown mapping method "+method.String())
		}
		if f.err != nil {
			return nil, errFormat(TagCMAP, off, "truncated %s payload", method)
		}
		cm.blocks = append(cm.blocks, block)
	}
	tracer().Debugf("CMAP: %d block(s)", len(cm.blocks))
	return cm, nil
}

// resolveIn resolves a code within a single block. The second return value
// reports whether the block recognizes the code at all.
func (b *CodeBlock) resolveIn(code uint32) (int, bool) {
	switch b.Method {
	case MapDirect:
		if code < b.Begin || code > b.End {
			return NoGlyph, false
		}
		index := int(code-b.Begin) + int(b.Base)
		if index >= directSentinel {
			return NoGlyph, true
		}
		return index, true
	case MapTable:
		if code < b.Begin || code > b.End {
			return NoGlyph, false
		}
		index := b.Entries[code-b.Begin]
		if index == NoGlyph {
			return NoGlyph, true
		}
		return int(index), true
	case MapScan:
		// Pair order is not guaranteed sorted; scan linearly. The declared
		// code range of Scan blocks is not reliable and is ignored.
		for _, pair := range b.Pairs {
			if pair.Code == code {
				if pair.Index == NoGlyph {
					return NoGlyph, true
				}
				return int(pair.Index), true
			}
		}
	}
	return NoGlyph, false
}

// Resolve maps a codepoint to its glyph index. Blocks are tried in chain
// order; the first block recognizing the code decides, even when it yields
// the NoGlyph sentinel. The boolean is false both for the sentinel and for
// codes no block recognizes.
func (cm *CodeMap) Resolve(code uint32) (int, bool) {
	if cm == nil {
		return NoGlyph, false
	}
	for i := range cm.blocks {
		if index, known := cm.blocks[i].resolveIn(code); known {
			if index == NoGlyph {
				return NoGlyph, false
			}
			return index, true
		}
	}
	return NoGlyph, false
}

// Mapping materializes the full codepoint to glyph-index map, honoring
// chain order precedence (earlier blocks win on duplicate codes).
func (cm *CodeMap) Mapping() map[uint32]uint16 {
	mapping := make(map[uint32]uint16)
	if cm == nil {
		return mapping
	}
	for i := range cm.blocks {
		b := &cm.blocks[i]
		switch b.Method {
		case MapDirect:
			for code := b.Begin; code <= b.End; code++ {
				index := int(code-b.Begin) + int(b.Base)
				if index >= directSentinel {
					continue
				}
				if _, seen := mapping[code]; !seen {
					mapping[code] = uint16(index)
				}
			}
		case MapTable:
			for i, index := range b.Entries {
				if index == NoGlyph {
					continue
				}
				code := b.Begin + uint32(i)
				if _, seen := mapping[code]; !seen {
					mapping[code] = uint16(index)
				}
			}
		case MapScan:
			for _, pair := range b.Pairs {
				if pair.Index == NoGlyph {
					continue
				}
				if _, seen := mapping[pair.Code]; !seen {
					mapping[pair.Code] = uint16(pair.Index)
				}
			}
		}
	}
	return mapping
}

// Blocks returns the ordered chain block descriptors.
func (cm *CodeMap) Blocks() []CodeBlock {
	if cm == nil {
		return nil
	}
	return cm.blocks
}

// Wide reports whether codepoint fields are 32 bit in this chain.
func (cm *CodeMap) Wide() bool {
	return cm != nil && cm.wide
}
