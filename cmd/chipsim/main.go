package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/hwlib"
	"github.com/db47h/chipsim/loader"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
)

// session holds the chip library of a chipsim run.
type session struct {
	lib     chipsim.Library
	workers int
	calls   bool // trace every chip call
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()

	defTrace := gconf.GetString("chipsim.trace")
	if defTrace == "" {
		defTrace = "Error"
	}
	tlevel := flag.String("trace", defTrace, "Trace level [Debug|Info|Error]")
	workers := flag.Int("workers", gconf.GetInt("chipsim.workers"), "Goroutines used for truth tables (0 = GOMAXPROCS)")
	stdlib := flag.Bool("stdlib", true, "Load the hwlib chips")
	eval := flag.String("eval", "", "Evaluate chip=bits and exit")
	table := flag.String("table", "", "Print the truth table of a chip and exit")
	tree := flag.String("tree", "", "Print the hierarchy of a chip and exit")
	flag.Parse()
	setTraceLevel(*tlevel)

	s := &session{
		lib:     make(chipsim.Library),
		workers: *workers,
		calls:   tracing.TraceLevelFromString(*tlevel) == tracing.LevelDebug,
	}
	if *stdlib {
		if err := hwlib.Into(s.lib); err != nil {
			fatal(err)
		}
	}
	if _, err := loader.LoadFilesInto(s.lib, flag.Args()...); err != nil {
		fatal(err)
	}
	tracer().Infof("%d chips loaded", len(s.lib))

	batch := false
	if *eval != "" {
		batch = true
		i := strings.IndexRune(*eval, '=')
		if i < 0 {
			fatal(errors.New("-eval expects chip=bits"))
		}
		if err := s.eval((*eval)[:i], (*eval)[i+1:]); err != nil {
			fatal(err)
		}
	}
	if *table != "" {
		batch = true
		if err := s.table(*table); err != nil {
			fatal(err)
		}
	}
	if *tree != "" {
		batch = true
		if err := s.tree(*tree); err != nil {
			fatal(err)
		}
	}
	if !batch {
		s.repl()
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range []string{"chipsim.cli", "chipsim.parser", "chipsim.eval", "chipsim.lexer", "chipsim.loader"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func fatal(err error) {
	pterm.Error.Println(err.Error())
	tracer().Debugf("%+v", err)
	os.Exit(1)
}

func (s *session) repl() {
	rl, err := readline.New("chipsim> ")
	if err != nil {
		fatal(err)
	}
	defer rl.Close()
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" {
			break
		}
		if err = s.exec(args[0], args[1:]); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
}

func (s *session) exec(cmd string, args []string) error {
	switch cmd {
	case "chips":
		pterm.Println(strings.Join(s.lib.Names(), " "))
		return nil
	case "eval":
		if len(args) != 2 {
			return errors.New("usage: eval <chip> <bits>")
		}
		return s.eval(args[0], args[1])
	case "table":
		if len(args) != 1 {
			return errors.New("usage: table <chip>")
		}
		return s.table(args[0])
	case "tree":
		if len(args) != 1 {
			return errors.New("usage: tree <chip>")
		}
		return s.tree(args[0])
	case "load":
		_, err := loader.LoadFilesInto(s.lib, args...)
		return err
	}
	return errors.New("unknown command " + strconv.Quote(cmd))
}

func (s *session) eval(name, bits string) error {
	in, err := chipsim.ParseBits(bits)
	if err != nil {
		return err
	}
	out, err := chipsim.NewEvaluator(s.lib, chipsim.TraceCalls(s.calls)).Evaluate(name, in)
	if err != nil {
		return err
	}
	pterm.Info.Println(name + "(" + in.String() + ") = " + out.String())
	return nil
}

func (s *session) table(name string) error {
	t, err := chipsim.TruthTable(s.lib, name, s.workers)
	if err != nil {
		return err
	}
	header := append(append([]string(nil), t.Inputs...), t.Outputs...)
	data := pterm.TableData{header}
	for _, r := range t.Rows {
		var row []string
		for _, b := range r.In {
			row = append(row, bit(b))
		}
		for _, b := range r.Out {
			row = append(row, bit(b))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// tree prints the chip hierarchy, one node per instruction.
//
func (s *session) tree(name string) error {
	if _, ok := s.lib[name]; !ok && !chipsim.IsPrimitive(name) {
		return errors.WithStack(&chipsim.UnknownChipError{Name: name})
	}
	ll := s.leveledChip(pterm.LeveledList{}, name, name, 0)
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	return nil
}

func (s *session) leveledChip(ll pterm.LeveledList, label, name string, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label})
	c, ok := s.lib[name]
	if !ok {
		return ll
	}
	for _, inst := range c.Instructions {
		l := inst.Callee + "(" + strings.Join(inst.Inputs, ", ") + ") -> " + strings.Join(inst.Outputs, ", ")
		ll = s.leveledChip(ll, l, inst.Callee, level+1)
	}
	return ll
}
