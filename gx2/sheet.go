package gx2

import (
	"fmt"
	"image"
	"image/color"
)

// FormatBC4 is the texel format code of the one block-compressed format
// this package decodes. Sheets in any other format stay undecoded.
const FormatBC4 = 12

// SheetState tells whether a sheet's raster could be produced.
type SheetState int

const (
	SheetDecoded   SheetState = iota
	SheetUndecoded            // unsupported texel format; raw bytes kept
)

// Sheet is one physical texture page of a font, either decoded into a
// raster or carried through undecoded.
type Sheet struct {
	Index  int
	Format uint16
	State  SheetState
	Image  *image.NRGBA // nil when undecoded
	Raw    []byte       // original sheet bytes (read-only view)
}

// Decoded reports whether the sheet carries a raster.
func (s *Sheet) Decoded() bool {
	return s != nil && s.State == SheetDecoded
}

// DecodeSheet decodes one sheet's raw bytes into a raster. For the BC4
// format the data is deswizzled and block-decoded; the decoded channel
// drives the raster's alpha and is replicated into white color channels
// for preview. Unsupported formats yield an undecoded Sheet and no error;
// a BC4 sheet whose byte size contradicts its pixel dimensions is a hard
// error.
func DecodeSheet(raw []byte, format uint16, width, height, index int) (*Sheet, error) {
	sheet := &Sheet{Index: index, Format: format, Raw: raw}
	if format != FormatBC4 {
		tracer().Infof("sheet %d: texel format %d not supported, kept undecoded", index, format)
		sheet.State = SheetUndecoded
		return sheet, nil
	}
	widthBlocks := width / 4
	heightBlocks := height / 4
	if expected := widthBlocks * heightBlocks * bc4BlockSize; expected != len(raw) {
		return nil, fmt.Errorf("sheet %d: BC4 data size mismatch: need %d bytes, have %d",
			index, expected, len(raw))
	}
	linear := Deswizzle(raw, widthBlocks, heightBlocks, index)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	off := 0
	for by := 0; by < heightBlocks; by++ {
		for bx := 0; bx < widthBlocks; bx++ {
			samples := decodeBC4Block(linear[off : off+bc4BlockSize])
			off += bc4BlockSize
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					img.SetNRGBA(bx*4+px, by*4+py, color.NRGBA{
						R: 255, G: 255, B: 255,
						A: samples[py*4+px],
					})
				}
			}
		}
	}
	sheet.State = SheetDecoded
	sheet.Image = img
	return sheet, nil
}

// DecodeChannel decodes a BC4 sheet into its bare channel samples in
// row-major pixel order, without building a raster. The repacker uses this
// for verification against exported images.
func DecodeChannel(raw []byte, width, height, index int) ([]uint8, error) {
	widthBlocks := width / 4
	heightBlocks := height / 4
	if expected := widthBlocks * heightBlocks * bc4BlockSize; expected != len(raw) {
		return nil, fmt.Errorf("sheet %d: BC4 data size mismatch: need %d bytes, have %d",
			index, expected, len(raw))
	}
	linear := Deswizzle(raw, widthBlocks, heightBlocks, index)
	out := make([]uint8, width*height)
	off := 0
	for by := 0; by < heightBlocks; by++ {
		for bx := 0; bx < widthBlocks; bx++ {
			samples := decodeBC4Block(linear[off : off+bc4BlockSize])
			off += bc4BlockSize
			for py := 0; py < 4; py++ {
				for px := 0; px < 4; px++ {
					out[(by*4+py)*width+bx*4+px] = samples[py*4+px]
				}
			}
		}
	}
	return out, nil
}
