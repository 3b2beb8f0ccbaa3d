// Command parsemath evaluates arithmetic expressions from arguments, a file,
// or standard input.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/parsemath"
	"github.com/zephyrtronium/parsemath/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("parsemath failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parsemath [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: `Evaluate arithmetic expressions with + - * / ^ & | and parentheses.
Each argument is one expression. With no arguments, the expression is read
from --in or standard input.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := cmd.Flags()
	f.String("in", "", "input file, or - for stdin (default stdin if no args given)")
	f.String("fmt", "%g", "result formatting string")
	f.BoolP("lines", "n", false, "parse separate input lines as separate expressions")
	f.Bool("echo", false, "print parse trees")
	f.Bool("strict", false, "reject whitespace in expressions")
	f.Int("max-depth", parsemath.DefaultMaxDepth, "maximum expression nesting, 0 for no limit")
	f.Bool("ignore-trailing", false, "ignore input after a complete expression")
	f.String("config", "", "YAML config file")
	f.BoolP("verbose", "v", false, "log parse trees")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	verbose, _ := f.GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
		log.Debug("loaded config", "path", path)
	}
	// Flags given on the command line override the file.
	if f.Changed("fmt") {
		cfg.Format, _ = f.GetString("fmt")
	}
	if f.Changed("lines") {
		cfg.Lines, _ = f.GetBool("lines")
	}
	if f.Changed("echo") {
		cfg.Echo, _ = f.GetBool("echo")
	}
	if f.Changed("strict") {
		cfg.Strict, _ = f.GetBool("strict")
	}
	if f.Changed("max-depth") {
		cfg.MaxDepth, _ = f.GetInt("max-depth")
	}
	if f.Changed("ignore-trailing") {
		cfg.IgnoreTrailing, _ = f.GetBool("ignore-trailing")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	var ins []input
	inname, _ := f.GetString("in")
	switch {
	case inname != "" && inname != "-":
		file, err := os.Open(inname)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer file.Close()
		ins = append(ins, input{name: inname, r: file})
	case inname == "-", len(args) == 0:
		ins = append(ins, input{name: "stdin", r: cmd.InOrStdin()})
	}
	for i, arg := range args {
		ins = append(ins, input{name: fmt.Sprintf("arg %d", i+1), r: strings.NewReader(arg)})
	}

	e := evaluator{
		out:  cmd.OutOrStdout(),
		log:  log,
		cfg:  cfg,
		opts: cfg.ParseOptions(),
	}
	for _, in := range ins {
		if err := e.input(in); err != nil {
			return err
		}
	}
	if e.failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", e.failed, e.total)
	}
	return nil
}

type input struct {
	name string
	r    io.Reader
}

// evaluator prints the results of expressions and counts failures.
type evaluator struct {
	out  io.Writer
	log  *slog.Logger
	cfg  config.Config
	opts []parsemath.ParseOption

	total, failed int
}

func (e *evaluator) input(in input) error {
	if !e.cfg.Lines {
		e.expr(in.name, 0, bufio.NewReader(in.r))
		return nil
	}
	sc := bufio.NewScanner(in.r)
	var line int
	for sc.Scan() {
		line++
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		e.expr(in.name, line, strings.NewReader(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", in.name, err)
	}
	return nil
}

// expr parses and evaluates one expression. Errors are printed in place of
// the result so that later expressions still run.
func (e *evaluator) expr(name string, line int, src io.RuneScanner) {
	e.total++
	log := e.log.With("input", name)
	if line > 0 {
		log = log.With("line", line)
	}
	a, err := parsemath.ParseReader(src, e.opts...)
	if err != nil {
		e.fail(log, "parse failed", err)
		return
	}
	log.Debug("parsed", "tree", a.String())
	if e.cfg.Echo {
		fmt.Fprintf(e.out, "%v : ", a)
	}
	r, err := parsemath.Evaluate(a)
	if err != nil {
		e.fail(log, "evaluation failed", err)
		return
	}
	fmt.Fprintf(e.out, e.cfg.Format+"\n", r)
}

func (e *evaluator) fail(log *slog.Logger, msg string, err error) {
	e.failed++
	args := []any{"error", err}
	var ie parsemath.InputError
	if errors.As(err, &ie) {
		args = append(args, "col", ie.Pos())
	}
	log.Warn(msg, args...)
	fmt.Fprintln(e.out, err)
}
