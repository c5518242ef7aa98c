/*
Package fixture builds small synthetic font containers in memory. The
test suites of the parsing, model and repacking packages share these
buffers instead of shipping binary testdata files; every field of a
fixture is spelled out here, so a failing assertion can be traced to a
concrete byte.
*/
package fixture

import (
	"encoding/binary"

	"github.com/rashevskyv/bffnt-tools/gx2"
)

// Builder appends fixed-width fields to a growing buffer in a chosen
// byte order and supports patching earlier positions, which the section
// pointers of a container need.
type Builder struct {
	buf   []byte
	order binary.ByteOrder
}

func New(order binary.ByteOrder) *Builder {
	return &Builder{order: order}
}

func (b *Builder) Len() int      { return len(b.buf) }
func (b *Builder) Bytes() []byte { return b.buf }

func (b *Builder) U8(v uint8) { b.buf = append(b.buf, v) }

func (b *Builder) U16(v uint16) {
	var tmp [2]byte
	b.order.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) U32(v uint32) {
	var tmp [4]byte
	b.order.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

func (b *Builder) I16(v int16) { b.U16(uint16(v)) }

// Tag appends a 4-byte section tag; tags are stored big-endian in both
// container byte orders.
func (b *Builder) Tag(tag string) {
	b.buf = append(b.buf, tag...)
}

func (b *Builder) Raw(p []byte) { b.buf = append(b.buf, p...) }

func (b *Builder) Pad(n int) {
	b.buf = append(b.buf, make([]byte, n)...)
}

// PadTo pads with zero bytes up to an absolute offset.
func (b *Builder) PadTo(off int) {
	for len(b.buf) < off {
		b.buf = append(b.buf, 0)
	}
}

func (b *Builder) PutU16At(off int, v uint16) {
	b.order.PutUint16(b.buf[off:], v)
}

func (b *Builder) PutU32At(off int, v uint32) {
	b.order.PutUint32(b.buf[off:], v)
}

// chainBias converts a true offset to the stored next/pointer encoding.
func chainBias(off int) uint32 {
	if off == 0 {
		return 0
	}
	return uint32(off) + 8
}

// Cafe fixture geometry, shared with the test assertions.
const (
	CafeSheetWidth   = 128
	CafeSheetHeight  = 64
	CafeSheetCount   = 2
	CafeSheetSize    = (CafeSheetWidth / 4) * (CafeSheetHeight / 4) * 8
	CafeRows         = 10
	CafeCols         = 8
	CafeWidthFirst2  = 32 // first glyph index of the second width block
	CafeTableNoGlyph = 0x35
)

// CafeFont builds a big-endian FFNT container with two BC4 sheets, a two
// block width chain and a three block mapping chain covering all three
// mapping methods. Chain details:
//
//	Direct  0x41..0x5A, base 1       ('A' maps to glyph 1)
//	Table   0x30..0x39, indices 27.. (0x35 maps to the no-glyph sentinel)
//	Scan    unsorted pairs 0x3042→40, 0x20AC→45, 0xE9→50, and 0x41→99
//	        shadowed by the Direct block
//
// Width entry for glyph index i is (i%3-1, 10+i, 8+i).
func CafeFont() []byte {
	b := New(binary.BigEndian)

	// header
	b.Tag("FFNT")
	b.U16(0xFEFF)
	b.U16(20)         // header size
	b.U32(0x03000000) // version, below the NX threshold but big-endian
	fileSizeAt := b.Len()
	b.U32(0) // file size, patched below
	b.U16(7) // section count
	b.U16(0)

	// FINF, modern field order
	b.Tag("FINF")
	b.U32(32)
	b.U8(1)   // type
	b.U8(14)  // height
	b.U8(12)  // width
	b.U8(11)  // ascent
	b.U16(16) // line feed
	b.U16(0)  // alternate glyph index
	b.U8(0)   // default left
	b.U8(10)  // default glyph width
	b.U8(10)  // default char width
	b.U8(0)   // encoding UTF-16
	tglpPtrAt := b.Len()
	b.U32(0)
	b.U32(0)
	b.U32(0)

	// TGLP; its declared size carries the sheet data
	tglpOff := b.Len()
	b.Tag("TGLP")
	tglpSizeAt := b.Len()
	b.U32(0)
	b.U8(12) // cell width
	b.U8(14) // cell height
	b.U8(CafeSheetCount)
	b.U8(12) // max char width
	b.U32(CafeSheetSize)
	b.U16(11) // baseline
	b.U16(gx2.FormatBC4)
	b.U16(CafeRows)
	b.U16(CafeCols)
	b.U16(CafeSheetWidth)
	b.U16(CafeSheetHeight)
	dataOffAt := b.Len()
	b.U32(0)
	b.PadTo(96)
	b.PutU32At(dataOffAt, uint32(b.Len()))
	for i := 0; i < CafeSheetCount; i++ {
		b.Raw(cafeSheet(i))
	}
	b.PutU32At(tglpSizeAt, uint32(b.Len()-tglpOff))

	// CWDH chain, two blocks
	cwdh1 := b.Len()
	b.Tag("CWDH")
	b.U32(48)
	b.U16(0)
	b.U16(9)
	next1At := b.Len()
	b.U32(0)
	for i := 0; i < 10; i++ {
		writeWidthTriple(b, i)
	}
	b.Pad(2)

	cwdh2 := b.Len()
	b.PutU32At(next1At, chainBias(cwdh2))
	b.Tag("CWDH")
	b.U32(40)
	b.U16(CafeWidthFirst2)
	b.U16(CafeWidthFirst2 + 7)
	b.U32(0)
	for i := CafeWidthFirst2; i < CafeWidthFirst2+8; i++ {
		writeWidthTriple(b, i)
	}

	// CMAP chain: Direct, Table, Scan
	cmap1 := b.Len()
	b.Tag("CMAP")
	b.U32(24)
	b.U16(0x41)
	b.U16(0x5A)
	b.U16(0) // Direct
	b.U16(0)
	nextAt := b.Len()
	b.U32(0)
	b.U16(1) // base glyph index
	b.Pad(2)

	cmap2 := b.Len()
	b.PutU32At(nextAt, chainBias(cmap2))
	b.Tag("CMAP")
	b.U32(40)
	b.U16(0x30)
	b.U16(0x39)
	b.U16(1) // Table
	b.U16(0)
	nextAt = b.Len()
	b.U32(0)
	for i := 0; i < 10; i++ {
		if 0x30+i == CafeTableNoGlyph {
			b.I16(-1)
		} else {
			b.I16(int16(27 + i))
		}
	}

	cmap3 := b.Len()
	b.PutU32At(nextAt, chainBias(cmap3))
	b.Tag("CMAP")
	b.U32(40)
	b.U16(0) // Scan ranges are stored zeroed in the wild
	b.U16(0)
	b.U16(2) // Scan
	b.U16(0)
	b.U32(0)
	b.U16(4) // pair count
	b.U16(0x3042)
	b.I16(40)
	b.U16(0x20AC)
	b.I16(45)
	b.U16(0xE9)
	b.I16(50)
	b.U16(0x41) // shadowed by the Direct block
	b.I16(99)
	b.Pad(2)

	b.PutU32At(tglpPtrAt, chainBias(tglpOff))
	b.PutU32At(tglpPtrAt+4, chainBias(cwdh1))
	b.PutU32At(tglpPtrAt+8, chainBias(cmap1))
	b.PutU32At(fileSizeAt, uint32(b.Len()))
	return b.Bytes()
}

// writeWidthTriple appends the deterministic width entry for glyph i.
func writeWidthTriple(b *Builder, i int) {
	b.U8(uint8(int8(i%3 - 1)))
	b.U8(uint8(10 + i))
	b.U8(uint8(8 + i))
}

// CafeWidthEntry returns the width triple the Cafe fixture stores for
// glyph index i.
func CafeWidthEntry(i int) (left int8, glyph, char uint8) {
	return int8(i%3 - 1), uint8(10 + i), uint8(8 + i)
}

// cafeSheet produces deterministic BC4 block data for one sheet, in
// swizzled (stored) order. Linear block k carries endpoints (k, 255-k)
// and a rolling index pattern, so a decode mismatch points at the block.
func cafeSheet(index int) []byte {
	widthBlocks := CafeSheetWidth / 4
	heightBlocks := CafeSheetHeight / 4
	linear := make([]byte, widthBlocks*heightBlocks*8)
	for k := 0; k < widthBlocks*heightBlocks; k++ {
		off := k * 8
		linear[off] = uint8(k)
		linear[off+1] = 255 - uint8(k)
		for j := 2; j < 8; j++ {
			linear[off+j] = uint8(k * j)
		}
	}
	return gx2.Swizzle(linear, widthBlocks, heightBlocks, index)
}

// NXFont builds a little-endian FFNT container at the NX version
// threshold: 32-bit code fields in the mapping chain and one sheet in an
// unsupported texel format. The Scan block maps 0x1F600→0 and 0x61→1.
func NXFont() []byte {
	b := New(binary.LittleEndian)

	b.Tag("FFNT")
	b.Raw([]byte{0xFF, 0xFE}) // BOM is compared big-endian; 0xFFFE selects LE
	b.U16(20)
	b.U32(0x04010000)
	fileSizeAt := b.Len()
	b.U32(0)
	b.U16(4)
	b.U16(0)

	b.Tag("FINF")
	b.U32(32)
	b.U8(1)
	b.U8(16) // height
	b.U8(14) // width
	b.U8(13) // ascent
	b.U16(18)
	b.U16(0)
	b.U8(0)
	b.U8(12)
	b.U8(12)
	b.U8(0)
	tglpPtrAt := b.Len()
	b.U32(0)
	b.U32(0)
	b.U32(0)

	tglpOff := b.Len()
	b.Tag("TGLP")
	tglpSizeAt := b.Len()
	b.U32(0)
	b.U8(14)
	b.U8(16)
	b.U8(1) // one sheet
	b.U8(14)
	b.U32(512)
	b.U16(13)
	b.U16(1) // not BC4; stays undecoded
	b.U16(4)
	b.U16(4)
	b.U16(64)
	b.U16(32)
	dataOffAt := b.Len()
	b.U32(0)
	b.PadTo(96)
	b.PutU32At(dataOffAt, uint32(b.Len()))
	sheet := make([]byte, 512)
	for i := range sheet {
		sheet[i] = uint8(i)
	}
	b.Raw(sheet)
	b.PutU32At(tglpSizeAt, uint32(b.Len()-tglpOff))

	cwdhOff := b.Len()
	b.Tag("CWDH")
	b.U32(32)
	b.U16(0)
	b.U16(4)
	b.U32(0)
	for i := 0; i < 5; i++ {
		writeWidthTriple(b, i)
	}
	b.Pad(1)

	cmapOff := b.Len()
	b.Tag("CMAP")
	b.U32(44)
	b.U32(0) // Scan range, stored zeroed
	b.U32(0)
	b.U16(2) // Scan
	b.U16(0)
	b.U32(0) // next
	b.U16(2) // pair count
	b.U16(0) // padding after the count, wide layout only
	b.U32(0x1F600)
	b.I16(0)
	b.U16(0)
	b.U32(0x61)
	b.I16(1)
	b.U16(0)

	b.PutU32At(tglpPtrAt, chainBias(tglpOff))
	b.PutU32At(tglpPtrAt+4, chainBias(cwdhOff))
	b.PutU32At(tglpPtrAt+8, chainBias(cmapOff))
	b.PutU32At(fileSizeAt, uint32(b.Len()))
	return b.Bytes()
}

// LegacyCtrFont builds a little-endian CFNT container using the legacy
// FINF field order: the section pointers sit between the defaults and
// the cell metrics. It has no sheets; the mapping is a single Direct
// block 0x20..0x29 with base 0.
func LegacyCtrFont() []byte {
	b := New(binary.LittleEndian)

	b.Tag("CFNT")
	b.Raw([]byte{0xFF, 0xFE}) // BOM, compared big-endian
	b.U16(20)
	b.U32(0x03000000)
	fileSizeAt := b.Len()
	b.U32(0)
	b.U16(4)
	b.U16(0)

	b.Tag("FINF")
	b.U32(32)
	b.U8(1)   // type
	b.U8(15)  // line feed, single byte here
	b.U16(0)  // alternate glyph index
	b.U8(0)   // default left
	b.U8(9)   // default glyph width
	b.U8(9)   // default char width
	b.U8(1)   // encoding Shift-JIS
	tglpPtrAt := b.Len()
	b.U32(0)
	b.U32(0)
	b.U32(0)
	b.U8(13) // height
	b.U8(11) // width
	b.U8(10) // ascent
	b.U8(0)

	tglpOff := b.Len()
	b.Tag("TGLP")
	b.U32(32)
	b.U8(10)
	b.U8(12)
	b.U8(0) // no sheets
	b.U8(10)
	b.U32(0)
	b.U16(10)
	b.U16(gx2.FormatBC4)
	b.U16(4)
	b.U16(4)
	b.U16(64)
	b.U16(64)
	b.U32(0)

	cwdhOff := b.Len()
	b.Tag("CWDH")
	b.U32(20)
	b.U16(0)
	b.U16(0)
	b.U32(0)
	writeWidthTriple(b, 0)
	b.Pad(1)

	cmapOff := b.Len()
	b.Tag("CMAP")
	b.U32(24)
	b.U16(0x20)
	b.U16(0x29)
	b.U16(0) // Direct
	b.U16(0)
	b.U32(0)
	b.U16(0) // base
	b.Pad(2)

	b.PutU32At(tglpPtrAt, chainBias(tglpOff))
	b.PutU32At(tglpPtrAt+4, chainBias(cwdhOff))
	b.PutU32At(tglpPtrAt+8, chainBias(cmapOff))
	b.PutU32At(fileSizeAt, uint32(b.Len()))
	return b.Bytes()
}
