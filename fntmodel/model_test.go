package fntmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestCodepointFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.model")
	defer teardown()
	//
	if got := FormatCodepoint(0x3042); got != "U+3042" {
		t.Errorf("expected U+3042, got %q", got)
	}
	if got := FormatCodepoint(0x41); got != "U+0041" {
		t.Errorf("expected U+0041, got %q", got)
	}
	if got := FormatCodepoint(0x1F600); got != "U+1F600" {
		t.Errorf("expected U+1F600, got %q", got)
	}
}

func TestCodepointParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.model")
	defer teardown()
	//
	cases := map[string]uint32{
		"U+3042": 0x3042,
		"u+0041": 0x41,
		"0x1F":   0x1F,
		"0X20":   0x20,
		"65":     65,
	}
	for s, want := range cases {
		got, err := ParseCodepoint(s)
		if err != nil {
			t.Errorf("%q: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected 0x%X, got 0x%X", s, want, got)
		}
	}
	for _, s := range []string{"", "U+", "zz", "U+GG"} {
		if _, err := ParseCodepoint(s); err == nil {
			t.Errorf("%q: expected an error", s)
		}
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.model")
	defer teardown()
	//
	doc := &Document{
		Signature:  "FFNT",
		BOM:        0xFEFF,
		Version:    0x03000000,
		HeaderSize: 20,
		Platform:   "Cafe",
		Info:       FontInfoRecord{Height: 14, Width: 12, Ascent: 11, LineFeed: 16},
		Layout:     SheetLayoutRecord{CellWidth: 12, CellHeight: 14, SheetCount: 2},
		Glyphs: []GlyphRecord{
			{Codepoint: "U+0041", Char: "A", Index: 1, Sheet: 0, GridX: 1, GridY: 0,
				Width: &WidthRecord{Left: -1, Glyph: 11, Char: 9}},
			{Codepoint: "U+3042", Char: "あ", Index: 40, Sheet: 0, GridX: 0, GridY: 4},
		},
		Transforms: TransformRecord{Rotate180: true},
		Original:   []byte{0x46, 0x46, 0x4E, 0x54, 0xFE, 0xFF},
		SourceFile: "font.bffnt",
	}

	path := filepath.Join(t.TempDir(), "font.json")
	require.NoError(t, Save(doc, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, doc, loaded)

	// the embedded original must survive as base64, not a number array
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"file_b64": "`)
}

func TestBaseBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.model")
	defer teardown()
	//
	doc := &Document{Original: []byte{1, 2, 3}}
	base, ok := doc.BaseBytes()
	if !ok || len(base) != 3 {
		t.Errorf("expected the embedded bytes, got %v (ok=%v)", base, ok)
	}
	doc.IgnoreOriginal = true
	if _, ok := doc.BaseBytes(); ok {
		t.Error("ignore_file_b64 must suppress the embedded bytes")
	}
	if _, ok := (&Document{}).BaseBytes(); ok {
		t.Error("expected no base bytes on an empty document")
	}
}

func TestGlyphCodepointOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bffnt.model")
	defer teardown()
	//
	g := &GlyphRecord{Codepoint: "U+20AC"}
	code, ok := g.CodepointOf()
	if !ok || code != 0x20AC {
		t.Errorf("expected 0x20AC, got 0x%X (ok=%v)", code, ok)
	}
	g = &GlyphRecord{Codepoint: "broken"}
	if _, ok := g.CodepointOf(); ok {
		t.Error("expected failure for an unparsable codepoint")
	}
}
