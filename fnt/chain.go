package fnt

import "encoding/binary"

// Linked section chains. CWDH and CMAP sections link to the next block of
// their kind through a 32-bit offset in the block header. A stored value of
// zero terminates the chain; any other value points 8 bytes past the real
// section start (i.e. past tag + size), so the bias must be subtracted
// before following the link.

// chainOffsetBias is the fixed bias on stored next-offsets and on the
// TGLP/CWDH/CMAP pointers in FINF.
const chainOffsetBias = 8

// maxChainBlocks bounds chain traversal so that corrupt containers fail
// fast instead of looping. Real fonts carry a handful of blocks per chain.
const maxChainBlocks = 1024

// debias resolves a stored chain offset to the true section offset.
// Zero stays zero (chain terminator).
func debias(stored uint32) int {
	if stored == 0 {
		return 0
	}
	return int(stored) - chainOffsetBias
}

// walkChain collects the resolved start offsets of all blocks of a chain.
// Every block must carry the expected tag at its start; nextField is the
// byte distance from the block start to the stored next-offset field.
// A revisited offset (cycle) or an overlong chain is a FormatError.
func walkChain(data binarySegm, order binary.ByteOrder, start int, tag Tag, nextField int) ([]int, error) {
	var offsets []int
	visited := make(map[int]bool)
	off := start
	for off != 0 {
		if visited[off] {
			return nil, errFormat(tag, off, "cyclic section chain")
		}
		if len(offsets) >= maxChainBlocks {
			return nil, errFormat(tag, off, "section chain exceeds %d blocks", maxChainBlocks)
		}
		visited[off] = true
		blockTag, err := data.u32(binary.BigEndian, off)
		if err != nil || Tag(blockTag) != tag {
			return nil, errFormat(tag, off, "expected %s block in chain", tag)
		}
		offsets = append(offsets, off)
		stored, err := data.u32(order, off+nextField)
		if err != nil {
			return nil, errFormat(tag, off, "truncated block header")
		}
		off = debias(stored)
	}
	tracer().Debugf("%s chain has %d block(s)", tag, len(offsets))
	return offsets, nil
}
