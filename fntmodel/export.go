package fntmodel

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/rashevskyv/bffnt-tools/gx2"
)

// Raster export. Every decoded sheet becomes one PNG with the decoded
// channel in alpha. Display transforms (flip before rotation) are applied
// on export and recorded in the model, so verification can undo them.

// SheetFileName returns the export file name for one sheet, with transform
// suffixes appended in the order rotate, flip.
func SheetFileName(index int, tr TransformRecord) string {
	name := fmt.Sprintf("sheet_%d", index)
	if tr.Rotate180 {
		name += ".rot180"
	}
	if tr.FlipY {
		name += ".flipY"
	}
	return name + ".png"
}

// ExportSheets writes one PNG per decoded sheet into dir and returns the
// file names in sheet order. Undecoded sheets produce no file; their slot
// in the returned slice is the empty string.
func ExportSheets(sheets []*gx2.Sheet, dir string, tr TransformRecord) ([]string, error) {
	names := make([]string, len(sheets))
	for i, sheet := range sheets {
		if !sheet.Decoded() {
			tracer().Infof("sheet %d undecoded, skipping export", i)
			continue
		}
		name := SheetFileName(i, tr)
		img := ApplyTransforms(sheet.Image, tr)
		if err := writePNG(filepath.Join(dir, name), img); err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// LoadSheetImage reads a previously exported sheet PNG back in.
func LoadSheetImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sheet image %s: %w", path, err)
	}
	return img, nil
}

// ApplyTransforms produces a copy of img with the recorded display
// transforms applied: flip first, then rotation.
func ApplyTransforms(img image.Image, tr TransformRecord) *image.NRGBA {
	out := toNRGBA(img)
	if tr.FlipY {
		out = flipY(out)
	}
	if tr.Rotate180 {
		out = rotate180(out)
	}
	return out
}

// UndoTransforms inverts ApplyTransforms. Both transforms are
// involutions, so undo applies them in reverse order.
func UndoTransforms(img image.Image, tr TransformRecord) *image.NRGBA {
	out := toNRGBA(img)
	if tr.Rotate180 {
		out = rotate180(out)
	}
	if tr.FlipY {
		out = flipY(out)
	}
	return out
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(out, image.Point{}, img, b, draw.Src, nil)
	return out
}

func rotate180(src *image.NRGBA) *image.NRGBA {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	return affine(src, f64.Aff3{
		-1, 0, float64(w),
		0, -1, float64(h),
	})
}

func flipY(src *image.NRGBA) *image.NRGBA {
	h := src.Bounds().Dy()
	return affine(src, f64.Aff3{
		1, 0, 0,
		0, -1, float64(h),
	})
}

func affine(src *image.NRGBA, s2d f64.Aff3) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}
