package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"

	"github.com/rashevskyv/bffnt-tools"
	"github.com/rashevskyv/bffnt-tools/fntmodel"
)

// containerExts lists the file suffixes the recursive walk treats as
// font containers.
var containerExts = []string{".bffnt", ".bcfnt", ".brfnt"}

func runUnpackCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	path := strings.TrimSpace(args["path"].Value)
	if path == "" {
		fatalf("input path is required")
	}
	opts := bffnt.UnpackOptions{
		Transforms: fntmodel.TransformRecord{
			Rotate180: mustFlagBool(flags["rotate180"], "rotate180"),
			FlipY:     mustFlagBool(flags["flipy"], "flipy"),
		},
		NoEmbed: mustFlagBool(flags["no-embed"], "no-embed"),
	}
	outDir := mustFlagString(flags["out"], "out")

	if mustFlagBool(flags["recursive"], "recursive") {
		jobs := mustFlagInt(flags["jobs"], "jobs")
		if jobs < 1 {
			jobs = 1
		}
		unpackTree(path, opts, jobs)
		return
	}
	doc, err := bffnt.UnpackFile(path, outDir, opts)
	if err != nil {
		fatalf("unpack %s: %v", path, err)
	}
	pterm.Info.Printf("unpacked %s: %d glyphs, %d sheet(s)\n",
		path, len(doc.Glyphs), len(doc.SheetFiles))
}

// unpackTree walks a directory and unpacks every container it finds.
// Workers run concurrently; a failing container is reported and does not
// stop the batch.
func unpackTree(root string, opts bffnt.UnpackOptions, jobs int) {
	paths := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done, failed := 0, 0

	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				perFile := opts
				perFile.SourceFile = "" // let UnpackFile record the file name
				_, err := bffnt.UnpackFile(path, "", perFile)
				mu.Lock()
				if err != nil {
					failed++
					pterm.Error.Printf("%s: %v\n", path, err)
				} else {
					done++
					pterm.Printf("unpacked %s\n", path)
				}
				mu.Unlock()
			}
		}()
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isContainerFile(path) {
			paths <- path
		}
		return nil
	})
	close(paths)
	wg.Wait()

	if walkErr != nil {
		fatalf("walking %s: %v", root, walkErr)
	}
	pterm.Info.Printf("%d unpacked, %d failed\n", done, failed)
}

func isContainerFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range containerExts {
		if ext == e {
			return true
		}
	}
	return false
}
