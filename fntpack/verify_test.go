package fntpack

import (
	"image"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
	"github.com/rashevskyv/bffnt-tools/gx2"
	"github.com/rashevskyv/bffnt-tools/internal/fixture"
)

func cafeSheetsDecoded(t *testing.T) (*fnt.Container, []image.Image) {
	t.Helper()
	c, err := fnt.Parse(fixture.CafeFont())
	require.NoError(t, err)
	images := make([]image.Image, len(c.Sheets))
	for i, raw := range c.Sheets {
		sheet, err := gx2.DecodeSheet(raw, c.Layout.Format,
			int(c.Layout.SheetWidth), int(c.Layout.SheetHeight), i)
		require.NoError(t, err)
		images[i] = sheet.Image
	}
	return c, images
}

func TestVerifySheetsClean(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, images := cafeSheetsDecoded(t)
	warnings := VerifySheets(c, images, fntmodel.TransformRecord{})
	if len(warnings) != 0 {
		t.Errorf("expected no warnings for untouched sheets, got %v", warnings)
	}
}

func TestVerifySheetsWithTransforms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, images := cafeSheetsDecoded(t)
	tr := fntmodel.TransformRecord{Rotate180: true, FlipY: true}
	transformed := make([]image.Image, len(images))
	for i, img := range images {
		transformed[i] = fntmodel.ApplyTransforms(img, tr)
	}
	warnings := VerifySheets(c, transformed, tr)
	if len(warnings) != 0 {
		t.Errorf("expected transforms to be undone before comparing, got %v", warnings)
	}
}

func TestVerifySheetsDetectsEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, images := cafeSheetsDecoded(t)
	edited := images[1].(*image.NRGBA)
	edited.Pix[edited.PixOffset(10, 10)+3] ^= 0xFF
	warnings := VerifySheets(c, images, fntmodel.TransformRecord{})
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", warnings)
	}
	if warnings[0].Sheet != 1 {
		t.Errorf("warning should name sheet 1, got %d", warnings[0].Sheet)
	}
}

func TestVerifySheetsSkipsMissingImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, images := cafeSheetsDecoded(t)
	images[0] = nil
	warnings := VerifySheets(c, images, fntmodel.TransformRecord{})
	if len(warnings) != 0 {
		t.Errorf("missing images are skipped, got %v", warnings)
	}
}

func TestVerifySheetsWrongDimensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, images := cafeSheetsDecoded(t)
	images[0] = image.NewNRGBA(image.Rect(0, 0, 8, 8))
	warnings := VerifySheets(c, images, fntmodel.TransformRecord{})
	if len(warnings) != 1 {
		t.Fatalf("expected a dimension warning, got %v", warnings)
	}
	if warnings[0].Sheet != 0 {
		t.Errorf("warning should name sheet 0, got %d", warnings[0].Sheet)
	}
}
