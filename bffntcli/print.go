package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/rashevskyv/bffnt-tools/fnt"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Commands:")
	pterm.Println("  info           container header and section summary")
	pterm.Println("  glyph:<code>   resolve a codepoint (U+3042, 0x41 or decimal)")
	pterm.Println("  index:<n>      show grid position and width of a glyph index")
	pterm.Println("  widths[:a-b]   width chain blocks, optionally entries a..b")
	pterm.Println("  sheets         sheet geometry")
	pterm.Println("  blocks         mapping chain blocks")
	pterm.Println("  quit           leave (or <ctrl>D)")
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	c := intp.container
	order := "big-endian"
	if c.LittleEndian() {
		order = "little-endian"
	}
	pterm.Printf("%s container, %s, version 0x%08X, platform %s\n",
		c.Signature, order, c.Version, c.Platform)
	pterm.Printf("metrics: height=%d width=%d ascent=%d linefeed=%d baseline=%d\n",
		c.Info.Height, c.Info.Width, c.Info.Ascent, c.Info.LineFeed, c.Layout.Baseline)
	pterm.Printf("encoding: %s\n", c.Info.Encoding)
	pterm.Printf("defaults: left=%d glyph=%d char=%d, alternate index %d\n",
		int8(c.Info.DefaultLeft), c.Info.DefaultGlyph, c.Info.DefaultChar, c.Info.AlterIndex)
	for _, w := range c.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("glyph needs a codepoint argument, e.g. glyph:U+3042"), false
	}
	code, err := fntmodel.ParseCodepoint(arg)
	if err != nil {
		return err, false
	}
	c := intp.container
	index, ok := c.CMap.Resolve(code)
	if !ok {
		pterm.Printf("%s is not mapped\n", fntmodel.FormatCodepoint(code))
		return nil, false
	}
	pterm.Printf("%s -> glyph %d", fntmodel.FormatCodepoint(code), index)
	if r, ok := c.Info.Encoding.DecodeRune(code); ok && strconv.IsPrint(r) {
		pterm.Printf("  %q", string(r))
	}
	pterm.Println()
	printIndex(c, uint16(index))
	return nil, false
}

func indexOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("index needs a glyph index argument, e.g. index:40"), false
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > 0xFFFF {
		return fmt.Errorf("invalid glyph index %q", arg), false
	}
	printIndex(intp.container, uint16(n))
	return nil, false
}

func printIndex(c *fnt.Container, index uint16) {
	if int(index) >= c.Layout.GlyphCapacity() {
		pterm.Printf("glyph %d is beyond the sheet capacity of %d\n",
			index, c.Layout.GlyphCapacity())
		return
	}
	sheet, col, row := fnt.GridPosition(int(index), int(c.Layout.Rows), int(c.Layout.Cols))
	pterm.Printf("glyph %d: sheet %d, cell (%d,%d)\n", index, sheet, col, row)
	if w, ok := c.Widths.WidthOf(index); ok {
		pterm.Printf("width: left=%d glyph=%d char=%d\n", w.Left, w.Glyph, w.Char)
	} else {
		pterm.Printf("width: defaults (left=%d glyph=%d char=%d)\n",
			int8(c.Info.DefaultLeft), c.Info.DefaultGlyph, c.Info.DefaultChar)
	}
}

func widthsOp(intp *Intp, op *Op) (error, bool) {
	c := intp.container
	blocks := c.Widths.Blocks()
	pterm.Printf("%d width block(s), %d entries total\n",
		len(blocks), c.Widths.Len())
	for _, b := range blocks {
		pterm.Printf("  @ 0x%X: indices %d..%d\n", b.Offset, b.First, b.Last)
	}
	if arg, ok := op.hasArg(); ok {
		from, to, err := parseIndexRange(arg)
		if err != nil {
			return err, false
		}
		for i := from; i <= to; i++ {
			if w, ok := c.Widths.WidthOf(uint16(i)); ok {
				pterm.Printf("  glyph %d: left=%d glyph=%d char=%d\n", i, w.Left, w.Glyph, w.Char)
			}
		}
	}
	return nil, false
}

// parseIndexRange accepts "from-to" or a single index.
func parseIndexRange(arg string) (int, int, error) {
	from, to, found := strings.Cut(arg, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil || lo < 0 || lo > 0xFFFF {
		return 0, 0, fmt.Errorf("invalid glyph index %q", from)
	}
	if !found {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil || hi < lo || hi > 0xFFFF {
		return 0, 0, fmt.Errorf("invalid index range %q", arg)
	}
	return lo, hi, nil
}

func sheetsOp(intp *Intp, op *Op) (error, bool) {
	l := intp.container.Layout
	pterm.Printf("%d sheet(s), %dx%d px, %d bytes each, texel format %d\n",
		l.SheetCount, l.SheetWidth, l.SheetHeight, l.SheetSize, l.Format)
	pterm.Printf("cells %dx%d px in a %dx%d grid, %d per sheet, capacity %d\n",
		l.CellWidth, l.CellHeight, l.Rows, l.Cols, l.CellsPerSheet(), l.GlyphCapacity())
	return nil, false
}

func blocksOp(intp *Intp, op *Op) (error, bool) {
	c := intp.container
	blocks := c.CMap.Blocks()
	wide := ""
	if c.CMap.Wide() {
		wide = ", 32-bit codes"
	}
	pterm.Printf("%d mapping block(s)%s\n", len(blocks), wide)
	for _, b := range blocks {
		switch b.Method {
		case fnt.MapDirect:
			pterm.Printf("  Direct @ 0x%X: U+%04X..U+%04X, base %d\n",
				b.Offset, b.Begin, b.End, b.Base)
		case fnt.MapTable:
			pterm.Printf("  Table  @ 0x%X: U+%04X..U+%04X, %d entries\n",
				b.Offset, b.Begin, b.End, len(b.Entries))
		case fnt.MapScan:
			pterm.Printf("  Scan   @ 0x%X: %d pairs\n", b.Offset, len(b.Pairs))
		default:
			pterm.Printf("  method %d @ 0x%X (not interpreted)\n", b.Method, b.Offset)
		}
	}
	return nil, false
}
