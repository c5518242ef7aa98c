/*
Package bffnt reads and writes the binary font containers of the
BFFNT/BCFNT/BRFNT family and converts them to and from an editable
on-disk representation.

The container formats bundle font metrics, glyph width tables, a
codepoint-to-glyph mapping and swizzled glyph sheet textures into one
file. This package ties the lower layers together:

▪︎ fnt parses a container into structured sections.

▪︎ gx2 deswizzles and decodes the sheet textures.

▪︎ fntmodel composes the editable model (font.json plus sheet PNGs).

▪︎ fntpack patches edits back onto the original bytes.

Unpack writes the editable representation of a container to a
directory; Repack reads it back and produces a patched container.
Repacking never rebuilds the file from scratch: it copies the original
bytes and overwrites only the fields the model edits, so an untouched
model repacks to a byte-identical file.

# Status

Sheet textures are decoded for the BC4 format only; sheets in other
texel formats are carried through unmodified and get no PNG. Sheet PNG
edits are verified but not written back.
*/
package bffnt

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
	"github.com/rashevskyv/bffnt-tools/fntpack"
	"github.com/rashevskyv/bffnt-tools/gx2"
)

// tracer traces to a global core-tracer.
func tracer() tracing.Trace {
	return tracing.Select("bffnt")
}

// ModelFileName is the name of the model document inside an unpack
// directory.
const ModelFileName = "font.json"

// Parse reads a binary font container. It is a convenience re-export of
// fnt.Parse for clients that only need the structured view.
func Parse(data []byte) (*fnt.Container, error) {
	return fnt.Parse(data)
}

// DecodeSheets decodes every sheet of a parsed container. Sheets in an
// unsupported texel format come back in the undecoded state; only
// structurally broken sheet data is an error.
func DecodeSheets(c *fnt.Container) ([]*gx2.Sheet, error) {
	sheets := make([]*gx2.Sheet, 0, len(c.Sheets))
	for i, raw := range c.Sheets {
		sheet, err := gx2.DecodeSheet(raw, c.Layout.Format,
			int(c.Layout.SheetWidth), int(c.Layout.SheetHeight), i)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// UnpackOptions configures Unpack.
type UnpackOptions struct {
	Transforms fntmodel.TransformRecord // display transforms applied to exported PNGs
	NoEmbed    bool                     // do not embed the original bytes in the model
	SourceFile string                   // recorded as the repack fallback base
}

// Unpack parses a container and writes its editable representation
// (font.json plus one PNG per decodable sheet) into dir. The directory
// is created if needed. The returned document is the same one written
// to disk.
func Unpack(data []byte, dir string, opts UnpackOptions) (*fntmodel.Document, error) {
	c, err := fnt.Parse(data)
	if err != nil {
		return nil, err
	}
	for _, w := range c.Warnings() {
		tracer().Infof("unpack: %v", w)
	}
	sheets, err := DecodeSheets(c)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	doc := fntmodel.Build(c, fntmodel.BuildOptions{
		EmbedOriginal: !opts.NoEmbed,
		SourceFile:    opts.SourceFile,
		Transforms:    opts.Transforms,
	})
	files, err := fntmodel.ExportSheets(sheets, dir, opts.Transforms)
	if err != nil {
		return nil, err
	}
	doc.SheetFiles = files
	if err := fntmodel.Save(doc, filepath.Join(dir, ModelFileName)); err != nil {
		return nil, err
	}
	tracer().Infof("unpacked %s (%s, %d glyphs) to %s",
		c.Signature, c.Platform, len(doc.Glyphs), dir)
	return doc, nil
}

// UnpackFile unpacks the container at path into dir. When dir is empty,
// a sibling directory named after the file is used.
func UnpackFile(path, dir string, opts UnpackOptions) (*fntmodel.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = outputDirFor(path)
	}
	if opts.SourceFile == "" {
		opts.SourceFile = filepath.Base(path)
	}
	return Unpack(data, dir, opts)
}

func outputDirFor(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(filepath.Dir(path), base[:len(base)-len(ext)])
}

// RepackOptions configures Repack.
type RepackOptions struct {
	Verify bool // compare sheet PNGs against the base rasters
}

// Repack reads the model from dir and produces a patched container at
// outPath. The base bytes come from the embedded copy in the model; when
// the model opted out of embedding, the recorded source file is read
// from dir (or from beside it).
func Repack(dir, outPath string, opts RepackOptions) (*fntpack.Result, error) {
	doc, err := fntmodel.Load(filepath.Join(dir, ModelFileName))
	if err != nil {
		return nil, err
	}
	base, err := resolveBase(doc, dir)
	if err != nil {
		return nil, err
	}
	res, err := fntpack.Repack(doc, fntpack.Options{Base: base})
	if err != nil {
		return nil, err
	}
	if opts.Verify {
		res.Warnings = append(res.Warnings, verifyAgainstBase(doc, dir, base)...)
	}
	if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
		return nil, err
	}
	tracer().Infof("repacked %s: %d width(s), %d mapping(s) patched",
		outPath, res.PatchedWidths, res.PatchedPairs)
	return res, nil
}

// resolveBase picks the original container bytes: the embedded copy if
// present, otherwise the recorded source file searched in dir and its
// parent.
func resolveBase(doc *fntmodel.Document, dir string) ([]byte, error) {
	if base, ok := doc.BaseBytes(); ok {
		return base, nil
	}
	if doc.SourceFile == "" {
		return nil, fntpack.ErrMissingBase
	}
	for _, p := range []string{
		filepath.Join(dir, doc.SourceFile),
		filepath.Join(filepath.Dir(dir), doc.SourceFile),
	} {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: source file %q not found near %s",
		fntpack.ErrMissingBase, doc.SourceFile, dir)
}

// verifyAgainstBase loads the exported sheet PNGs from dir and compares
// them against the rasters decoded from the base container. Problems are
// warnings only.
func verifyAgainstBase(doc *fntmodel.Document, dir string, base []byte) []fntpack.Warning {
	c, err := fnt.Parse(base)
	if err != nil {
		return []fntpack.Warning{{Sheet: -1, Issue: err.Error()}}
	}
	images := make([]image.Image, len(doc.SheetFiles))
	for i, name := range doc.SheetFiles {
		if name == "" {
			continue
		}
		img, err := fntmodel.LoadSheetImage(filepath.Join(dir, name))
		if err != nil {
			return []fntpack.Warning{{Sheet: i, Issue: err.Error()}}
		}
		images[i] = img
	}
	return fntpack.VerifySheets(c, images, doc.Transforms)
}
