package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jcorbin/gon/internal/codegen"
	"github.com/jcorbin/gon/internal/encode"
	"github.com/jcorbin/gon/internal/flushio"
	"github.com/jcorbin/gon/internal/logio"
	"github.com/jcorbin/gon/internal/panicerr"
	"github.com/jcorbin/gon/internal/preprocess"
	"github.com/jcorbin/gon/internal/tapeio"
)

// Exit codes.
const (
	exitOK = iota
	exitArgs
	exitOpen
	exitRead
	exitWrite
	exitAborted
	exitFailed
)

func main() {
	ctx := context.Background()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	cfg  config
	log  *logio.Logger
	args []string

	stdout io.Writer
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	cmd := command{
		log:    logio.NewLogger(stderr),
		stdout: stdout,
	}
	if code := cmd.parse(argv, stderr); code != exitOK {
		return code
	}
	cmd.exec(ctx)
	return cmd.log.ExitCode()
}

type modeFlag struct {
	set func()
}

func (mf modeFlag) IsBoolFlag() bool { return true }
func (mf modeFlag) String() string   { return "" }
func (mf modeFlag) Set(s string) error {
	if s != "true" {
		return fmt.Errorf("mode flags take no value")
	}
	mf.set()
	return nil
}

func (cmd *command) parse(argv []string, stderr io.Writer) int {
	cfg := &cmd.cfg
	if path := configPath(argv); path != "" {
		var openErr configOpenError
		if err := loadConfig(path, cfg); errors.As(err, &openErr) {
			cmd.log.Failf(exitOpen, "unable to open config: %v", err)
			return exitOpen
		} else if err != nil {
			cmd.log.Failf(exitArgs, "%v", err)
			return exitArgs
		}
	}

	fs := flag.NewFlagSet("gon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gon [flags] <source file> [seed element ...]\n\n")
		fs.PrintDefaults()
	}

	var configFile string
	fs.StringVar(&configFile, "config", "", "TOML file supplying flag defaults")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "write output to `file` instead of stdout")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "same as -o")

	for _, mode := range []struct {
		short, long string
		mode        tapeio.InputMode
	}{
		{"in", "input-numbers", tapeio.InputNumbers},
		{"ib", "input-bytes", tapeio.InputBytes},
		{"ir", "input-runes", tapeio.InputRunes},
	} {
		mode := mode
		mf := modeFlag{func() { cfg.Input = mode.mode }}
		fs.Var(mf, mode.short, "seed the tape with "+mode.mode.String()+" from the arguments")
		fs.Var(mf, mode.long, "same as -"+mode.short)
	}
	for _, format := range []struct {
		short, long string
		format      tapeio.Format
	}{
		{"on", "output-numbers", tapeio.Numbers},
		{"ob", "output-bytes", tapeio.Bytes},
		{"or", "output-runes", tapeio.Runes},
	} {
		format := format
		mf := modeFlag{func() { cfg.Format = format.format }}
		fs.Var(mf, format.short, "write the final tape as "+format.format.String())
		fs.Var(mf, format.long, "same as -"+format.short)
	}

	fs.Var(&cfg.Dialect, "dialect", "operator dialect: linear or ring")
	fs.Var(&cfg.Overflow, "overflow", "increment overflow policy: saturate or wrap")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "abort the run after a time limit")
	fs.Uint64Var(&cfg.StepLimit, "step-limit", cfg.StepLimit, "abort the run after this many operators")
	fs.UintVar(&cfg.CellLimit, "cell-limit", cfg.CellLimit, "abort the run once the tape exceeds this many cells")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "enable trace logging")
	fs.BoolVar(&cfg.Dump, "dump", cfg.Dump, "dump the VM to stderr after the run")
	fs.StringVar(&cfg.Emit, "emit", cfg.Emit, "emit source in another `language` instead of running; only go is supported")
	fs.BoolVar(&cfg.Encode, "encode", cfg.Encode, "treat the source file as data, and write a program producing it")

	// flags may follow the source file, interleaved with seed elements
	for rest := argv; ; {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return exitArgs
			}
			cmd.log.Failf(exitArgs, "%v", err)
			return exitArgs
		}
		args := fs.Args()
		if n := len(rest) - len(args); n > 0 && rest[n-1] == "--" {
			cmd.args = append(cmd.args, args...)
			break
		}
		if len(args) == 0 {
			break
		}
		cmd.args = append(cmd.args, args[0])
		rest = args[1:]
	}

	if len(cmd.args) == 0 {
		fs.Usage()
		cmd.log.Failf(exitArgs, "missing source file")
		return exitArgs
	}
	if cfg.Emit != "" && cfg.Emit != "go" {
		cmd.log.Failf(exitArgs, "unsupported -emit language %q", cfg.Emit)
		return exitArgs
	}
	return exitOK
}

func (cmd *command) exec(ctx context.Context) {
	name := cmd.args[0]
	f, err := os.Open(name)
	if err != nil {
		cmd.log.Failf(exitOpen, "unable to open source: %v", err)
		return
	}
	defer f.Close()

	if cmd.cfg.Encode {
		cmd.writeOutput(func(w io.Writer) error {
			return encode.Encode(w, f)
		})
		return
	}

	prog, err := preprocess.Read(cmd.cfg.Dialect, name, f)
	if err != nil {
		cmd.log.Failf(exitRead, "%v", err)
		return
	}

	if cmd.cfg.Emit == "go" {
		cmd.writeOutput(func(w io.Writer) error {
			return codegen.Generate(w, prog.Dialect, prog.Ops)
		})
		return
	}

	values, err := tapeio.Seed(cmd.cfg.Input, cmd.args[1:])
	if err != nil {
		cmd.log.Printf("WARN", "%v", err)
	}

	vm := New(
		WithSource(prog),
		WithSeed(values...),
		WithOverflow(cmd.cfg.Overflow),
		WithStepLimit(cmd.cfg.StepLimit),
		WithCellLimit(cmd.cfg.CellLimit),
	)
	if cmd.cfg.Trace {
		WithLogf(cmd.log.Leveledf("TRACE")).apply(vm)
	}

	if timeout := cmd.cfg.Timeout; timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = vm.Run(ctx)
	if cmd.cfg.Dump {
		lw := logio.Writer{Logf: cmd.log.Leveledf("DUMP")}
		vmDumper{vm: vm, out: &lw, runes: cmd.cfg.Format == tapeio.Runes}.dump()
		lw.Close()
	}
	if err != nil {
		cmd.failRun(err)
		return
	}

	cmd.writeOutput(func(w io.Writer) error {
		return tapeio.Write(w, cmd.cfg.Format, vm.Values())
	})
}

// failRun logs a run error, telling budget aborts apart from failures.
func (cmd *command) failRun(err error) {
	var stepLimit StepLimitError
	var cellLimit CellLimitError
	switch {
	case errors.As(err, &stepLimit),
		errors.As(err, &cellLimit),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		cmd.log.Failf(exitAborted, "run aborted: %v", err)
	case panicerr.IsPanic(err):
		cmd.log.Failf(exitFailed, "run failed: %+v", err)
	default:
		cmd.log.Failf(exitFailed, "run failed: %v", err)
	}
}

// writeOutput opens the output destination and passes it to write; when
// tracing, output is also copied into the log.
func (cmd *command) writeOutput(write func(w io.Writer) error) {
	dest := cmd.stdout
	if path := cmd.cfg.Output; path != "" {
		f, err := os.Create(path)
		if err != nil {
			cmd.log.Failf(exitOpen, "unable to open output: %v", err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				cmd.log.Failf(exitWrite, "unable to close output: %v", err)
			}
		}()
		dest = f
	}

	out := flushio.NewWriteFlusher(dest)
	if cmd.cfg.Trace {
		lw := &logio.Writer{Logf: cmd.log.Leveledf("OUT")}
		defer lw.Close()
		out = flushio.Tee(out, flushio.NewWriteFlusher(lw))
	}

	if err := write(out); err != nil {
		var readErr encode.ReadError
		if errors.As(err, &readErr) {
			cmd.log.Failf(exitRead, "%v", err)
		} else {
			cmd.log.Failf(exitWrite, "unable to write output: %v", err)
		}
		return
	}
	if err := out.Flush(); err != nil {
		cmd.log.Failf(exitWrite, "unable to flush output: %v", err)
	}
}
