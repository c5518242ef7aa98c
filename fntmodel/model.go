package fntmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Document is the serializable intermediate model of one font container.
// Field names follow the on-disk JSON schema; Original marshals as base64
// (the standard []byte treatment), matching the `file_b64` field the
// editor expects.
type Document struct {
	Signature  string            `json:"signature"`
	BOM        uint16            `json:"bom"`
	Version    uint32            `json:"version"`
	HeaderSize uint16            `json:"header_size"`
	Platform   string            `json:"platform"`
	Info       FontInfoRecord    `json:"finf"`
	Layout     SheetLayoutRecord `json:"tglp"`
	Glyphs     []GlyphRecord     `json:"glyphs"`
	SheetFiles []string          `json:"sheet_png,omitempty"`
	Transforms TransformRecord   `json:"png_ops"`

	// Original is the embedded original container. It may be absent when
	// the model opted out of embedding; the repacker then needs an
	// external base buffer.
	Original       []byte `json:"file_b64,omitempty"`
	IgnoreOriginal bool   `json:"ignore_file_b64,omitempty"`
	SourceFile     string `json:"source_file,omitempty"`
}

// FontInfoRecord mirrors the editable FINF scalars.
type FontInfoRecord struct {
	Type         int `json:"type"`
	Height       int `json:"height"`
	Width        int `json:"width"`
	Ascent       int `json:"ascent"`
	LineFeed     int `json:"line_feed"`
	AlterIndex   int `json:"alter_char_index"`
	DefaultLeft  int `json:"default_left"`
	DefaultGlyph int `json:"default_glyph"`
	DefaultChar  int `json:"default_char"`
	CharEncoding int `json:"char_encoding"`
}

// SheetLayoutRecord mirrors the TGLP section.
type SheetLayoutRecord struct {
	CellWidth    int `json:"cell_width"`
	CellHeight   int `json:"cell_height"`
	MaxCharWidth int `json:"max_char_width"`
	Baseline     int `json:"base_line"`
	SheetSize    int `json:"sheet_size"`
	SheetCount   int `json:"sheet_count"`
	Format       int `json:"format"`
	Rows         int `json:"rows"`
	Cols         int `json:"cols"`
	SheetWidth   int `json:"sheet_width"`
	SheetHeight  int `json:"sheet_height"`
	DataOffset   int `json:"sheet_data_off"`
}

// GlyphRecord is one glyph of the model: codepoint, display character,
// dense glyph index, grid position, and the width triple (absent when the
// index has no width entry and falls back to the FINF defaults).
type GlyphRecord struct {
	Codepoint string       `json:"codepoint"`
	Char      string       `json:"char"`
	Index     int          `json:"index"`
	Sheet     int          `json:"sheet"`
	GridX     int          `json:"grid_x"`
	GridY     int          `json:"grid_y"`
	Width     *WidthRecord `json:"width"`
}

// WidthRecord is an editable width triple.
type WidthRecord struct {
	Left  int `json:"left"`
	Glyph int `json:"glyph"`
	Char  int `json:"char"`
}

// TransformRecord records display-only transforms applied to exported
// rasters, so they can be undone before verification.
type TransformRecord struct {
	Rotate180 bool `json:"rotate180"`
	FlipY     bool `json:"flipY"`
}

// None reports whether no transform is recorded.
func (t TransformRecord) None() bool {
	return !t.Rotate180 && !t.FlipY
}

// FormatCodepoint renders a codepoint in the model's U+XXXX notation.
func FormatCodepoint(code uint32) string {
	return fmt.Sprintf("U+%04X", code)
}

// ParseCodepoint accepts the U+XXXX notation as well as 0x-prefixed hex
// and plain decimal, mirroring what hand-edited model files contain.
func ParseCodepoint(s string) (uint32, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(t, "U+"):
		v, err = strconv.ParseUint(t[2:], 16, 32)
	case strings.HasPrefix(t, "0X"):
		v, err = strconv.ParseUint(t[2:], 16, 32)
	default:
		v, err = strconv.ParseUint(t, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", s, err)
	}
	return uint32(v), nil
}

// CodepointOf returns the glyph record's codepoint, falling back to the
// first rune of the display character when the codepoint field is missing
// or unparseable.
func (g *GlyphRecord) CodepointOf() (uint32, bool) {
	if g.Codepoint != "" {
		if cp, err := ParseCodepoint(g.Codepoint); err == nil {
			return cp, true
		}
	}
	for _, r := range g.Char {
		return uint32(r), true
	}
	return 0, false
}

// Save writes the document as indented JSON.
func Save(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads a document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("model file %s: %w", path, err)
	}
	tracer().Debugf("loaded model with %d glyph(s)", len(doc.Glyphs))
	return doc, nil
}

// BaseBytes returns the usable original container bytes of the model, or
// false when embedding was disabled or absent.
func (doc *Document) BaseBytes() ([]byte, bool) {
	if doc.IgnoreOriginal || len(doc.Original) == 0 {
		return nil, false
	}
	return doc.Original, true
}
