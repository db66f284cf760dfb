package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	flag "github.com/spf13/pflag"

	automaton "github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/config"
	"github.com/geange/dfamin/internal/dot"
	"github.com/geange/dfamin/internal/logging"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries the exit code of the process.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns the resolved configuration, true if the program
// should exit cleanly without doing anything (help was requested), or an *ExitError. Settings are
// layered as defaults, config file, environment, flags.
func Parse(args []string, stdout, stderr io.Writer) (*config.Config, bool, error) {
	fs := flag.NewFlagSet("dfamin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		help       bool
		configFile string
		format     string
		noMinimize bool
		logLevel   string
		logFile    string
	)
	fs.BoolVarP(&help, "help", "h", false, "Prints help message")
	fs.StringVarP(&configFile, "config", "c", "", "YAML config file")
	fs.StringVarP(&format, "format", "f", config.FormatText, "Output format, possible values: text, dot (Graphviz DOT without layout)")
	fs.BoolVar(&noMinimize, "no-minimize", false, "Rewrite the automaton without minimizing it")
	fs.StringVar(&logLevel, "log-level", "", "Logging level: debug, info, warn, error (default warn)")
	fs.StringVar(&logFile, "log-file", "", "Log destination: stderr or a file path (default stderr)")

	if err := fs.Parse(args); err != nil {
		printUsage(stderr, fs)
		return nil, false, usageError("%v", err)
	}
	if help {
		printUsage(stdout, fs)
		return nil, true, nil
	}

	switch fs.NArg() {
	case 1, 2:
	case 0:
		printUsage(stderr, fs)
		return nil, false, usageError("missing required argument INPUTFILE")
	default:
		printUsage(stderr, fs)
		return nil, false, usageError("too many arguments: %d", fs.NArg())
	}

	cfg := config.NewConfig()
	if configFile != "" {
		if err := config.LoadFile(configFile, cfg); err != nil {
			return nil, false, usageError("%v", err)
		}
	}
	if err := config.LoadEnv(cfg); err != nil {
		return nil, false, usageError("%v", err)
	}

	if fs.Changed("format") {
		cfg.Format = format
	}
	if fs.Changed("no-minimize") {
		cfg.NoMinimize = noMinimize
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if fs.Changed("log-file") {
		cfg.Logging.Logfile = logFile
	}
	cfg.Input = fs.Arg(0)
	cfg.Output = fs.Arg(1)

	if err := cfg.Validate(); err != nil {
		return nil, false, usageError("%v", err)
	}
	return cfg, false, nil
}

// Run reads the input automaton, minimizes it and writes the result to the output file, or to stdout
// when no output file is given. Nothing is written if any step fails.
func Run(stdout, stderr io.Writer, args []string) error {
	cfg, shouldExit, err := Parse(args, stdout, stderr)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger, err := logging.NewLogger(&cfg.Logging, stderr)
	if err != nil {
		return usageError("can not init logger: %v", err)
	}
	defer logger.Close()

	d, err := automaton.ParseFile(cfg.Input)
	if err != nil {
		return errors.Wrapf(err, "can not load automaton from %s", cfg.Input)
	}
	logger.Debugw("automaton loaded",
		"input", cfg.Input,
		"states", d.GetNumStates(),
		"symbols", d.GetNumSymbols(),
		"final", d.GetNumFinalStates(),
		"empty_language", automaton.IsEmpty(d))

	if !cfg.NoMinimize {
		var stats automaton.Stats
		d, stats = automaton.MinimizeWithStats(d)
		logger.Infow("automaton minimized",
			"states", stats.States,
			"reachable", stats.Reachable,
			"classes", stats.Classes,
			"reachability_passes", stats.ReachabilityPasses,
			"marking_passes", stats.MarkingPasses)
	}

	var buf bytes.Buffer
	switch cfg.Format {
	case config.FormatDot:
		if err := dot.Render(d, &buf); err != nil {
			return errors.Wrap(err, "can not render automaton")
		}
	default:
		if _, err := d.WriteTo(&buf); err != nil {
			return errors.Wrap(err, "can not render automaton")
		}
	}

	if cfg.Output == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return errors.Wrap(&automaton.IOError{Op: "write", Path: "stdout", Err: err}, "can not write automaton")
		}
		return nil
	}

	if err := writeFile(cfg.Output, buf.Bytes()); err != nil {
		return errors.Wrapf(err, "can not write automaton to %s", cfg.Output)
	}
	logger.Infof("automaton written to %s", cfg.Output)
	return nil
}

// writeFile replaces path with data through a temporary file in the same directory, so a failed write
// never leaves a truncated output behind.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &automaton.IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()

	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &automaton.IOError{Op: op, Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &automaton.IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	fmt.Fprintln(w, pterm.DefaultBasicText.Sprint("Usage: dfamin [OPTIONS] INPUTFILE [OUTPUTFILE]"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, pterm.DefaultBasicText.Sprint("Minimizes a deterministic finite automaton."))
	fmt.Fprintln(w)

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"ARGUMENT", "Description"},
		{"INPUTFILE", "Automaton to minimize"},
		{"OUTPUTFILE", "Where to write the result, standard output if omitted"},
	}).Srender()
	if err == nil {
		fmt.Fprintln(w, table)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
