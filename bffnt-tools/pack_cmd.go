package main

import (
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"

	"github.com/rashevskyv/bffnt-tools"
)

func runPackCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	dir := strings.TrimSpace(args["dir"].Value)
	if dir == "" {
		fatalf("input directory is required")
	}
	outPath := mustFlagString(flags["output"], "output")
	if outPath == "" {
		outPath = filepath.Clean(dir) + ".bffnt"
	}
	res, err := bffnt.Repack(dir, outPath, bffnt.RepackOptions{
		Verify: mustFlagBool(flags["verify"], "verify"),
	})
	if err != nil {
		fatalf("pack %s: %v", dir, err)
	}
	for _, w := range res.Warnings {
		if w.Sheet >= 0 {
			pterm.Warning.Printf("sheet %d: %s\n", w.Sheet, w.Issue)
		} else {
			pterm.Warning.Println(w.Issue)
		}
	}
	pterm.Info.Printf("wrote %s (%d bytes, %d width(s), %d mapping(s) patched)\n",
		outPath, len(res.Output), res.PatchedWidths, res.PatchedPairs)
}
