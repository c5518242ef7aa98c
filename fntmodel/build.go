package fntmodel

import (
	"sort"

	"github.com/rashevskyv/bffnt-tools/fnt"
)

// serviceCode is the reserved codepoint excluded from the glyph list.
const serviceCode = 0xFFFF

// BuildOptions guides model composition.
type BuildOptions struct {
	EmbedOriginal bool            // embed the container bytes for bit-identical repack
	SourceFile    string          // original file name, used as repack fallback reference
	Transforms    TransformRecord // display transforms the exporter will apply
}

// Build composes the intermediate model from a parsed container. It is
// pure composition: all decoding happened during fnt parsing, and sheet
// rasters are produced separately by the exporter.
func Build(c *fnt.Container, opts BuildOptions) *Document {
	doc := &Document{
		Signature:  c.Signature.String(),
		BOM:        c.BOM,
		Version:    c.Version,
		HeaderSize: c.HeaderSize,
		Platform:   c.Platform.String(),
		Info: FontInfoRecord{
			Type:         int(c.Info.Type),
			Height:       int(c.Info.Height),
			Width:        int(c.Info.Width),
			Ascent:       int(c.Info.Ascent),
			LineFeed:     int(c.Info.LineFeed),
			AlterIndex:   int(c.Info.AlterIndex),
			DefaultLeft:  int(c.Info.DefaultLeft),
			DefaultGlyph: int(c.Info.DefaultGlyph),
			DefaultChar:  int(c.Info.DefaultChar),
			CharEncoding: int(c.Info.Encoding),
		},
		Layout: SheetLayoutRecord{
			CellWidth:    int(c.Layout.CellWidth),
			CellHeight:   int(c.Layout.CellHeight),
			MaxCharWidth: int(c.Layout.MaxCharWidth),
			Baseline:     int(c.Layout.Baseline),
			SheetSize:    int(c.Layout.SheetSize),
			SheetCount:   int(c.Layout.SheetCount),
			Format:       int(c.Layout.Format),
			Rows:         int(c.Layout.Rows),
			Cols:         int(c.Layout.Cols),
			SheetWidth:   int(c.Layout.SheetWidth),
			SheetHeight:  int(c.Layout.SheetHeight),
			DataOffset:   int(c.Layout.DataOffset),
		},
		Glyphs:     buildGlyphList(c),
		Transforms: opts.Transforms,
		SourceFile: opts.SourceFile,
	}
	if opts.EmbedOriginal {
		doc.Original = append([]byte(nil), c.Bytes()...)
	}
	for i := 0; i < int(c.Layout.SheetCount); i++ {
		doc.SheetFiles = append(doc.SheetFiles, SheetFileName(i, opts.Transforms))
	}
	tracer().Debugf("model: %d glyphs, %d sheets", len(doc.Glyphs), len(doc.SheetFiles))
	return doc
}

// buildGlyphList walks the resolved codepoint mapping, attaching grid
// position, display character and width triple to every mapped glyph
// index. Records are ordered by glyph index so that grid neighbors stay
// together; the reserved service code is excluded.
func buildGlyphList(c *fnt.Container) []GlyphRecord {
	mapping := c.CMap.Mapping()
	glyphs := make([]GlyphRecord, 0, len(mapping))
	rows := int(c.Layout.Rows)
	cols := int(c.Layout.Cols)
	for code, index := range mapping {
		if code == serviceCode {
			continue
		}
		sheet, gridCol, gridRow := fnt.GridPosition(int(index), rows, cols)
		rec := GlyphRecord{
			Codepoint: FormatCodepoint(code),
			Index:     int(index),
			Sheet:     sheet,
			GridX:     gridCol,
			GridY:     gridRow,
		}
		if r, ok := c.Info.Encoding.DecodeRune(code); ok {
			rec.Char = string(r)
		}
		if w, ok := c.Widths.WidthOf(index); ok {
			rec.Width = &WidthRecord{
				Left:  int(w.Left),
				Glyph: int(w.Glyph),
				Char:  int(w.Char),
			}
			tracer().Debugf("glyph %d '%s' %s: left=%d glyph=%d char=%d",
				rec.Index, rec.Char, rec.Codepoint, rec.Width.Left, rec.Width.Glyph, rec.Width.Char)
		} else {
			tracer().Debugf("glyph %d '%s' %s", rec.Index, rec.Char, rec.Codepoint)
		}
		glyphs = append(glyphs, rec)
	}
	sort.Slice(glyphs, func(i, j int) bool {
		if glyphs[i].Index != glyphs[j].Index {
			return glyphs[i].Index < glyphs[j].Index
		}
		return glyphs[i].Codepoint < glyphs[j].Codepoint
	})
	return glyphs
}
