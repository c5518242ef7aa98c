package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/rashevskyv/bffnt-tools/fnt"
)

// tracer traces with key 'bffnt.cli'
func tracer() tracing.Trace {
	return tracing.Select("bffnt.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.bffnt.cli": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font container to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the BFFNT container CLI")
	//
	// set up REPL
	repl, err := readline.New("fnt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load container to inspect
	if err := intp.loadContainer(*fontname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	container *fnt.Container
	path      string
	repl      *readline.Instance
}

func (intp *Intp) String() string {
	if intp == nil || intp.container == nil {
		return "()"
	}
	return fmt.Sprintf("( %s %s )", intp.container.Signature, intp.path)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code int
	arg  string
}

const NOOP = -1
const (
	QUIT int = iota
	HELP
	INFO
	GLYPH
	INDEX
	WIDTHS
	SHEETS
	BLOCKS
)

var opMap = map[string]int{
	"quit":   QUIT,
	"help":   HELP,
	"info":   INFO,
	"glyph":  GLYPH,
	"index":  INDEX,
	"widths": WIDTHS,
	"sheets": SHEETS,
	"blocks": BLOCKS,
}

var opNames = []string{
	"quit",
	"help",
	"info",
	"glyph",
	"index",
	"widths",
	"sheets",
	"blocks",
}

func parseCommand(line string) (*Op, error) {
	c := strings.SplitN(line, ":", 2) // e.g. "glyph:U+3042" or "index:40" or "info"
	code, ok := opMap[strings.ToLower(strings.TrimSpace(c[0]))]
	if !ok {
		code = HELP
	}
	op := &Op{code: code}
	if len(c) > 1 {
		op.arg = strings.TrimSpace(c[1])
	}
	if op.arg == "" {
		tracer().Debugf("%s", opNames[op.code])
	} else {
		tracer().Debugf("%s: looking for '%s'", opNames[op.code], op.arg)
	}
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	HELP:   helpOp,
	INFO:   infoOp,
	GLYPH:  glyphOp,
	INDEX:  indexOp,
	WIDTHS: widthsOp,
	SHEETS: sheetsOp,
	BLOCKS: blocksOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Container Loading -----------------------------------------------

func (intp *Intp) loadContainer(path string) error {
	if path == "" {
		return fmt.Errorf("no container given, use -font")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("cannot read container %s: %s", path, err)
		return err
	}
	c, err := fnt.Parse(data)
	if err != nil {
		tracer().Errorf("cannot decode container %s: %s", path, err)
		return err
	}
	intp.container = c
	intp.path = path
	tracer().Infof("parsed %s container, platform %s", c.Signature, c.Platform)
	pterm.Printf("glyph mapping: %d codes, widths: %d entries, sheets: %d\n",
		len(c.CMap.Mapping()), c.Widths.Len(), len(c.Sheets))
	return nil
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
