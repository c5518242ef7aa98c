package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("bffnt-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for unpacking and repacking BFFNT/BCFNT/BRFNT font containers.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("unpack").
		SetDescription("Unpack font containers to editable font.json plus sheet PNGs.").
		SetShortDescription("unpack containers").
		AddArgument("path", "container file, or a directory with --recursive", "").
		AddFlag("out,o", "output directory (default: next to the input)", commando.String, "-").
		AddFlag("recursive,r", "unpack every container found under a directory", commando.Bool, nil).
		AddFlag("rotate180", "rotate exported sheet PNGs by 180 degrees", commando.Bool, nil).
		AddFlag("flipy", "mirror exported sheet PNGs vertically", commando.Bool, nil).
		AddFlag("no-embed", "do not embed the original bytes into font.json", commando.Bool, nil).
		AddFlag("jobs,j", "parallel workers for --recursive", commando.Int, 4).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runUnpackCommand)

	commando.
		Register("pack").
		SetDescription("Repack an unpacked directory into a font container.").
		SetShortDescription("repack a container").
		AddArgument("dir", "directory holding font.json", "").
		AddFlag("output,o", "output container file", commando.String, "-").
		AddFlag("verify", "compare sheet PNGs against the original rasters", commando.Bool, nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runPackCommand)

	commando.
		Register("info").
		SetDescription("Print diagnostics for a font container.").
		SetShortDescription("container diagnostics").
		AddArgument("path", "container file", "").
		AddFlag("warnings,w", "print parse warnings", commando.Bool, nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runInfoCommand)

	commando.Parse(nil)
}

// setupTracing routes the package tracers to a Go-log backend. Verbose
// switches the container tracers to Debug.
func setupTracing(verbose bool) {
	level := "Info"
	if verbose {
		level = "Debug"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.bffnt":           level,
		"trace.bffnt.container": level,
		"trace.bffnt.texture":   level,
		"trace.bffnt.model":     level,
		"trace.bffnt.pack":      level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s == "-" {
		return ""
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "bffnt-tools: "+format+"\n", args...)
	os.Exit(1)
}
