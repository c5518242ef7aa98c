package gx2

// GX2 macro-tiled addressing for 64-bit (8 bytes per block) texel data.
// The GPU stores compression blocks in 8x8-block micro tiles, grouped into
// 32x16-block macro tiles, with bank and pipe bits folded into the address
// and a per-surface bank swizzle. Deswizzling computes, for every linear
// block position, the tiled address its bytes live at.

const (
	macroTilePitch  = 32 // blocks per macro tile, x axis
	macroTileHeight = 16 // blocks per macro tile, y axis
	macroTileBytes  = 4096
	blockBits       = 64 // bits per BC4 block
)

// pixelIndexMicroTile interleaves the low coordinate bits of a block
// within its 8x8 micro tile, in the bit order used for 64-bit elements.
func pixelIndexMicroTile(x, y int) int {
	pb0 := x & 1
	pb1 := y & 1
	pb2 := (x & 2) >> 1
	pb3 := (x & 4) >> 2
	pb4 := (y & 2) >> 1
	pb5 := (y & 4) >> 2
	return 32*pb5 | 16*pb4 | 8*pb3 | 4*pb2 | 2*pb1 | pb0
}

func pipeFromCoord(x, y int) int {
	return ((y >> 3) ^ (x >> 3)) & 1
}

func bankFromCoord(x, y int) int {
	return (((y>>5)^(x>>3))&1 | 2*(((y>>4)^(x>>4))&1))
}

// bankSwapOrder rotates banks between horizontally adjacent swap regions.
var bankSwapOrder = [...]int{0, 1, 3, 2, 6, 7, 5, 4, 0, 0}

// computeBankSwappedWidth returns the width, in blocks, of one bank-swap
// region for a surface with the given pitch.
func computeBankSwappedWidth(pitchBlocks int) int {
	const bpp = 8 // bytes per block
	const bytesPerSample = 8 * bpp
	const bytesPerTileSlice = bytesPerSample
	swapTiles := 128 / bpp
	if swapTiles < 1 {
		swapTiles = 1
	}
	swapWidth := swapTiles * 32
	heightBytes := bpp * 2
	swapMax := 0x4000 / heightBytes
	swapMin := 256 / bytesPerTileSlice
	width := swapWidth
	if width > swapMax {
		width = swapMax
	}
	if width < swapMin {
		width = swapMin
	}
	for width >= 2*pitchBlocks {
		width >>= 1
	}
	return width
}

// tiledBlockAddress computes the byte address of the block at block
// coordinates (x, y) within a macro-tiled surface. pitch and height are in
// blocks; pipeSwizzle and bankSwizzle rotate the bank/pipe assignment per
// surface (sheets use their sheet index as bank swizzle).
func tiledBlockAddress(x, y, pitch, height, pipeSwizzle, bankSwizzle int) int {
	pixelIndex := pixelIndexMicroTile(x&7, y&7)
	elemOffset := (blockBits * pixelIndex) / 8

	pipe := pipeFromCoord(x, y)
	bank := bankFromCoord(x, y)

	swizzle := pipeSwizzle + 2*bankSwizzle
	bankPipe := ((pipe + 2*bank) ^ (swizzle % 8)) % 8
	pipe = bankPipe % 2
	bank = bankPipe / 2

	macroTilesPerRow := pitch / macroTilePitch
	macroTileIndexX := x / macroTilePitch
	macroTileIndexY := y / macroTileHeight

	if bankSwappedWidth := computeBankSwappedWidth(pitch); bankSwappedWidth != 0 {
		swapIndex := (macroTilePitch * macroTileIndexX) / bankSwappedWidth
		bank ^= bankSwapOrder[swapIndex&3]
	}

	macroTileOffset := (macroTileIndexX + macroTilesPerRow*macroTileIndexY) * macroTileBytes
	totalOffset := elemOffset + macroTileOffset>>3
	return bank<<9 | pipe<<8 | totalOffset&255 | (totalOffset&^255)<<3
}

// Deswizzle reorders GPU-tiled block data into linear row-major block
// order. widthBlocks and heightBlocks are the sheet dimensions in 4x4
// blocks; sheetIndex selects the per-sheet bank swizzle. The input is left
// untouched.
func Deswizzle(swizzled []byte, widthBlocks, heightBlocks, sheetIndex int) []byte {
	out := make([]byte, len(swizzled))
	bankSwizzle := sheetIndex & 3
	for y := 0; y < heightBlocks; y++ {
		for x := 0; x < widthBlocks; x++ {
			src := tiledBlockAddress(x, y, widthBlocks, heightBlocks, 0, bankSwizzle)
			dst := (y*widthBlocks + x) * bc4BlockSize
			if src+bc4BlockSize > len(swizzled) {
				continue
			}
			copy(out[dst:dst+bc4BlockSize], swizzled[src:src+bc4BlockSize])
		}
	}
	return out
}

// Swizzle is the inverse of Deswizzle: it scatters linear row-major block
// data into the GPU's tiled order. It exists for constructing test
// surfaces and for verification round trips; rasters themselves are never
// re-encoded.
func Swizzle(linear []byte, widthBlocks, heightBlocks, sheetIndex int) []byte {
	out := make([]byte, len(linear))
	bankSwizzle := sheetIndex & 3
	for y := 0; y < heightBlocks; y++ {
		for x := 0; x < widthBlocks; x++ {
			dst := tiledBlockAddress(x, y, widthBlocks, heightBlocks, 0, bankSwizzle)
			src := (y*widthBlocks + x) * bc4BlockSize
			if dst+bc4BlockSize > len(out) {
				continue
			}
			copy(out[dst:dst+bc4BlockSize], linear[src:src+bc4BlockSize])
		}
	}
	return out
}
