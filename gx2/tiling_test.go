package gx2

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSwizzleRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.texture")
	defer teardown()
	//
	const widthBlocks, heightBlocks = 32, 16
	linear := make([]byte, widthBlocks*heightBlocks*bc4BlockSize)
	for i := range linear {
		linear[i] = byte(i * 7)
	}
	for sheet := 0; sheet < 4; sheet++ {
		swizzled := Swizzle(linear, widthBlocks, heightBlocks, sheet)
		back := Deswizzle(swizzled, widthBlocks, heightBlocks, sheet)
		if !bytes.Equal(back, linear) {
			t.Errorf("sheet %d: deswizzle does not invert swizzle", sheet)
		}
	}
}

func TestSwizzleMovesBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.texture")
	defer teardown()
	//
	const widthBlocks, heightBlocks = 32, 16
	linear := make([]byte, widthBlocks*heightBlocks*bc4BlockSize)
	for i := range linear {
		linear[i] = byte(i)
	}
	swizzled := Swizzle(linear, widthBlocks, heightBlocks, 0)
	if bytes.Equal(swizzled, linear) {
		t.Error("macro tiling should permute block storage")
	}
}

func TestSheetIndexChangesBankSwizzle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.texture")
	defer teardown()
	//
	const widthBlocks, heightBlocks = 32, 16
	linear := make([]byte, widthBlocks*heightBlocks*bc4BlockSize)
	for i := range linear {
		linear[i] = byte(i * 3)
	}
	s0 := Swizzle(linear, widthBlocks, heightBlocks, 0)
	s1 := Swizzle(linear, widthBlocks, heightBlocks, 1)
	if bytes.Equal(s0, s1) {
		t.Error("sheets with different indices use different bank swizzles")
	}
	// the swizzle repeats every 4 sheets
	s4 := Swizzle(linear, widthBlocks, heightBlocks, 4)
	if !bytes.Equal(s0, s4) {
		t.Error("bank swizzle is the sheet index modulo 4")
	}
}

func TestTiledBlockAddressInRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.texture")
	defer teardown()
	//
	const widthBlocks, heightBlocks = 32, 16
	size := widthBlocks * heightBlocks * bc4BlockSize
	seen := make(map[int]bool)
	for y := 0; y < heightBlocks; y++ {
		for x := 0; x < widthBlocks; x++ {
			addr := tiledBlockAddress(x, y, widthBlocks, heightBlocks, 0, 0)
			if addr < 0 || addr+bc4BlockSize > size {
				t.Fatalf("block (%d,%d): address %d out of the %d byte surface", x, y, addr, size)
			}
			if seen[addr] {
				t.Fatalf("block (%d,%d): address %d assigned twice", x, y, addr)
			}
			seen[addr] = true
		}
	}
}
