package fntpack

import (
	"fmt"
	"image"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
	"github.com/rashevskyv/bffnt-tools/gx2"
)

// VerifySheets compares edited sheet images against the rasters decoded
// from the base container. Transforms applied at export time are undone
// first, so the comparison runs in sheet orientation. Mismatches are
// reported as warnings, never as errors: repack does not re-encode
// rasters, so a diverging image only means the PNG edit will not be
// reflected in the output.
func VerifySheets(c *fnt.Container, images []image.Image, tr fntmodel.TransformRecord) []Warning {
	if c.Layout.Format != gx2.FormatBC4 {
		return nil
	}
	var warnings []Warning
	w, h := int(c.Layout.SheetWidth), int(c.Layout.SheetHeight)
	for i, img := range images {
		if img == nil {
			continue
		}
		if i >= len(c.Sheets) {
			warnings = append(warnings, Warning{Sheet: i, Issue: "no such sheet in the base container"})
			continue
		}
		want, err := gx2.DecodeChannel(c.Sheets[i], w, h, i)
		if err != nil {
			warnings = append(warnings, Warning{Sheet: i, Issue: err.Error()})
			continue
		}
		got := fntmodel.UndoTransforms(img, tr)
		if diff := compareChannel(got, want, w, h); diff != "" {
			warnings = append(warnings, Warning{Sheet: i, Issue: diff})
		}
	}
	return warnings
}

// compareChannel checks the alpha channel of got against the decoded
// samples. An empty string means the sheet matches.
func compareChannel(got *image.NRGBA, want []uint8, w, h int) string {
	b := got.Bounds()
	if b.Dx() != w || b.Dy() != h {
		return fmt.Sprintf("image is %dx%d, sheet is %dx%d", b.Dx(), b.Dy(), w, h)
	}
	mismatches := 0
	firstX, firstY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := got.Pix[got.PixOffset(b.Min.X+x, b.Min.Y+y)+3]
			if a != want[y*w+x] {
				if mismatches == 0 {
					firstX, firstY = x, y
				}
				mismatches++
			}
		}
	}
	if mismatches == 0 {
		return ""
	}
	return fmt.Sprintf("%d pixel(s) differ from the stored raster, first at (%d,%d); sheet edits are not written back",
		mismatches, firstX, firstY)
}
