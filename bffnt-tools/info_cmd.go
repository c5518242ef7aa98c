package main

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"

	"github.com/rashevskyv/bffnt-tools"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	path := strings.TrimSpace(args["path"].Value)
	if path == "" {
		fatalf("container path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("cannot read %s: %v", path, err)
	}
	c, err := bffnt.Parse(data)
	if err != nil {
		fatalf("cannot parse %s: %v", path, err)
	}

	order := "big-endian"
	if c.LittleEndian() {
		order = "little-endian"
	}
	pterm.Printf("Path:      %s\n", path)
	pterm.Printf("Signature: %s (%s, version 0x%08X)\n", c.Signature, order, c.Version)
	pterm.Printf("Platform:  %s\n", c.Platform)
	pterm.Printf("Metrics:   height=%d width=%d ascent=%d linefeed=%d encoding=%s\n",
		c.Info.Height, c.Info.Width, c.Info.Ascent, c.Info.LineFeed, c.Info.Encoding)
	pterm.Printf("Sheets:    %d x %d bytes, %dx%d px, format %d, grid %dx%d\n",
		c.Layout.SheetCount, c.Layout.SheetSize,
		c.Layout.SheetWidth, c.Layout.SheetHeight,
		c.Layout.Format, c.Layout.Rows, c.Layout.Cols)
	pterm.Printf("Widths:    %d entries in %d block(s)\n",
		c.Widths.Len(), len(c.Widths.Blocks()))
	pterm.Printf("Mapping:   %d codes in %d block(s)",
		len(c.CMap.Mapping()), len(c.CMap.Blocks()))
	if c.CMap.Wide() {
		pterm.Printf(" (32-bit codes)")
	}
	pterm.Println()
	for _, b := range c.CMap.Blocks() {
		pterm.Printf("  %s block @ 0x%X, range U+%04X..U+%04X\n",
			b.Method, b.Offset, b.Begin, b.End)
	}
	for _, s := range c.Unknown {
		pterm.Printf("Unknown section %s @ 0x%X (%d bytes)\n", s.Tag, s.Offset, s.Size)
	}
	if mustFlagBool(flags["warnings"], "warnings") {
		for _, w := range c.Warnings() {
			pterm.Warning.Println(w.String())
		}
	}
}
