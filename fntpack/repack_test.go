package fntpack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
	"github.com/rashevskyv/bffnt-tools/internal/fixture"
)

func cafeModel(t *testing.T) *fntmodel.Document {
	t.Helper()
	c, err := fnt.Parse(fixture.CafeFont())
	require.NoError(t, err)
	return fntmodel.Build(c, fntmodel.BuildOptions{EmbedOriginal: true})
}

func glyphByCode(t *testing.T, doc *fntmodel.Document, code string) *fntmodel.GlyphRecord {
	t.Helper()
	for i := range doc.Glyphs {
		if doc.Glyphs[i].Codepoint == code {
			return &doc.Glyphs[i]
		}
	}
	t.Fatalf("no glyph record for %s", code)
	return nil
}

func TestRepackUneditedIsByteIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	original := fixture.CafeFont()
	doc := cafeModel(t)
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if !bytes.Equal(res.Output, original) {
		t.Fatal("an unedited model must repack to the identical buffer")
	}
	if res.PatchedWidths != 0 || res.PatchedPairs != 0 {
		t.Errorf("nothing changed, but %d widths / %d pairs reported",
			res.PatchedWidths, res.PatchedPairs)
	}
}

func TestRepackFontInfoEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	doc.Info.Height = 99
	doc.Info.LineFeed = 300
	res, err := Repack(doc, Options{})
	require.NoError(t, err)

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	if c.Info.Height != 99 {
		t.Errorf("height not patched, got %d", c.Info.Height)
	}
	if c.Info.LineFeed != 300 {
		t.Errorf("line feed not patched, got %d", c.Info.LineFeed)
	}
	// the sheet bytes must be untouched
	orig, err := fnt.Parse(fixture.CafeFont())
	require.NoError(t, err)
	for i := range c.Sheets {
		if !bytes.Equal(c.Sheets[i], orig.Sheets[i]) {
			t.Errorf("sheet %d changed", i)
		}
	}
}

func TestRepackLegacyFontInfoEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, err := fnt.Parse(fixture.LegacyCtrFont())
	require.NoError(t, err)
	doc := fntmodel.Build(c, fntmodel.BuildOptions{EmbedOriginal: true})
	doc.Info.Height = 21
	doc.Info.LineFeed = 22
	res, err := Repack(doc, Options{})
	require.NoError(t, err)

	back, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	if back.Info.Height != 21 || back.Info.LineFeed != 22 {
		t.Errorf("legacy layout not patched: height=%d linefeed=%d",
			back.Info.Height, back.Info.LineFeed)
	}
}

func TestRepackSheetLayoutEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	doc.Layout.CellWidth = 20
	doc.Layout.Baseline = 13
	res, err := Repack(doc, Options{})
	require.NoError(t, err)

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	if c.Layout.CellWidth != 20 || c.Layout.Baseline != 13 {
		t.Errorf("layout not patched: cell width %d, baseline %d",
			c.Layout.CellWidth, c.Layout.Baseline)
	}
	// structural fields stay untouched
	if c.Layout.SheetCount != fixture.CafeSheetCount || c.Layout.SheetSize != fixture.CafeSheetSize {
		t.Error("structural sheet fields must not change")
	}
}

func TestRepackWidthEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+0041") // glyph index 1
	g.Width.Left = -5
	g.Width.Glyph = 30
	g.Width.Char = 28
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if res.PatchedWidths != 1 {
		t.Errorf("expected 1 patched width, got %d", res.PatchedWidths)
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	w, ok := c.Widths.WidthOf(1)
	if !ok {
		t.Fatal("glyph 1 lost its width entry")
	}
	if w.Left != -5 || w.Glyph != 30 || w.Char != 28 {
		t.Errorf("width not patched, got %+v", w)
	}
}

func TestRepackTableMappingEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+0030")
	g.Index = 33 // still a valid Table slot, still width-covered
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if res.PatchedPairs != 1 {
		t.Errorf("expected 1 patched mapping, got %d", res.PatchedPairs)
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, ok := c.CMap.Resolve(0x30)
	if !ok || index != 33 {
		t.Errorf("U+0030: expected glyph 33, got %d (ok=%v)", index, ok)
	}
}

func TestRepackScanMappingEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+3042")
	g.Index = 60
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if res.PatchedPairs != 1 {
		t.Errorf("expected 1 patched mapping, got %d", res.PatchedPairs)
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, ok := c.CMap.Resolve(0x3042)
	if !ok || index != 60 {
		t.Errorf("U+3042: expected glyph 60, got %d (ok=%v)", index, ok)
	}
}

func TestRepackDirectBlockUniformShift(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	for i := range doc.Glyphs {
		g := &doc.Glyphs[i]
		code, _ := g.CodepointOf()
		if code >= 0x41 && code <= 0x5A {
			g.Index += 40 // base 1 becomes base 41
			g.Width = nil // the shifted indices have no width slots
		}
	}
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if res.PatchedPairs != 26 {
		t.Errorf("expected all 26 direct codes patched, got %d", res.PatchedPairs)
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, ok := c.CMap.Resolve(0x41)
	if !ok || index != 41 {
		t.Errorf("U+0041: expected glyph 41, got %d (ok=%v)", index, ok)
	}
}

func TestRepackDirectBlockNonUniformIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+0042")
	g.Index = 77 // breaks the arithmetic progression of the Direct block
	g.Width = nil
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the inexpressible edit")
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, _ := c.CMap.Resolve(0x42)
	if index != 2 {
		t.Errorf("skipped block must keep its original mapping, got %d", index)
	}
}

func TestRepackDirectBlockNegativeOffsetIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	// a uniform shift whose implied base offset is negative cannot be
	// stored in the u16 payload; the block must warn and keep its bytes
	doc := cafeModel(t)
	for i := range doc.Glyphs {
		g := &doc.Glyphs[i]
		code, _ := g.CodepointOf()
		if code >= 0x41 && code <= 0x5A {
			g.Index = int(code) - 0x41 - 1 // base 1 would become -1
			g.Width = nil
		}
	}
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unencodable base offset")
	}
	if res.PatchedPairs != 0 {
		t.Errorf("skipped block must patch nothing, got %d", res.PatchedPairs)
	}

	c, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, _ := c.CMap.Resolve(0x41)
	if index != 1 {
		t.Errorf("skipped block must keep its original mapping, got %d", index)
	}
}

func TestRepackTracesEditsAtDebugLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelDebug)
	defer tracer().SetTraceLevel(level)
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+0041")
	g.Width.Glyph = 31 // one width entry trace
	g = glyphByCode(t, doc, "U+0030")
	g.Index = 33 // one mapping trace
	res, err := Repack(doc, Options{})
	require.NoError(t, err)
	if res.PatchedWidths != 1 || res.PatchedPairs != 1 {
		t.Errorf("expected 1 width and 1 mapping edit, got %d/%d",
			res.PatchedWidths, res.PatchedPairs)
	}
}

func TestRepackWidthCapacityError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	g := glyphByCode(t, doc, "U+3042") // glyph 40, outside both width blocks
	g.Width = &fntmodel.WidthRecord{Left: 0, Glyph: 5, Char: 5}
	res, err := Repack(doc, Options{})
	var cerr *CapacityError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a CapacityError, got %v", err)
	}
	if cerr.Chain != fnt.TagCWDH {
		t.Errorf("expected the error to name CWDH, got %s", cerr.Chain)
	}
	if res != nil {
		t.Error("a failing repack must produce no output")
	}
}

func TestRepackMappingCapacityError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	doc := cafeModel(t)
	doc.Glyphs = append(doc.Glyphs, fntmodel.GlyphRecord{
		Codepoint: "U+9999", Index: 2,
	})
	res, err := Repack(doc, Options{})
	var cerr *CapacityError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a CapacityError, got %v", err)
	}
	if cerr.Chain != fnt.TagCMAP {
		t.Errorf("expected the error to name CMAP, got %s", cerr.Chain)
	}
	if res != nil {
		t.Error("a failing repack must produce no output")
	}
}

func TestRepackMissingBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, err := fnt.Parse(fixture.CafeFont())
	require.NoError(t, err)
	doc := fntmodel.Build(c, fntmodel.BuildOptions{}) // no embedding
	_, err = Repack(doc, Options{})
	if !errors.Is(err, ErrMissingBase) {
		t.Fatalf("expected ErrMissingBase, got %v", err)
	}
	// an explicit base buffer fills the gap
	res, err := Repack(doc, Options{Base: fixture.CafeFont()})
	require.NoError(t, err)
	if !bytes.Equal(res.Output, fixture.CafeFont()) {
		t.Error("explicit base should round-trip unchanged")
	}
}

func TestRepackNXScanEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.pack")
	defer teardown()
	//
	c, err := fnt.Parse(fixture.NXFont())
	require.NoError(t, err)
	doc := fntmodel.Build(c, fntmodel.BuildOptions{EmbedOriginal: true})
	g := glyphByCode(t, doc, "U+1F600")
	g.Index = 3
	res, err := Repack(doc, Options{})
	require.NoError(t, err)

	back, err := fnt.Parse(res.Output)
	require.NoError(t, err)
	index, ok := back.CMap.Resolve(0x1F600)
	if !ok || index != 3 {
		t.Errorf("U+1F600: expected glyph 3, got %d (ok=%v)", index, ok)
	}
}
