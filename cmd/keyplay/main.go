// Package main is the entry point for keyplay, the macro player.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/tebeka/atexit"

	"github.com/dshills/keyplay/internal/app"
	"github.com/dshills/keyplay/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

func main() {
	atexit.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}
	opts.Output = stdout
	opts.LogOutput = stderr

	application, err := app.New(opts)
	if err != nil {
		printError(stderr, fmt.Errorf("failed to initialize: %w", err))
		return exitFailure
	}

	// Release held keys on every exit path, including atexit.Fatal.
	atexit.Register(application.Shutdown)
	defer application.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrInterrupted) {
			fmt.Fprintln(stderr, "interrupted")
			return exitInterrupted
		}
		printError(stderr, err)
		return exitFailure
	}
	return exitOK
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error:")+" "+err.Error())
}

// parseFlags parses the command line. done is true when the program should
// exit with code without running (help, version, usage errors).
func parseFlags(args []string, stdout, stderr io.Writer) (opts app.Options, code int, done bool) {
	fs := flag.NewFlagSet("keyplay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		startDelay   float64
		lineDelay    float64
		restartDelay bool
		normalize    bool
		showVersion  bool
		showHelp     bool
	)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.Float64Var(&startDelay, "start-delay", 1.0, "Seconds to wait before the first instruction")
	fs.Float64Var(&startDelay, "s", 1.0, "Seconds to wait before the first instruction (shorthand)")
	fs.Float64Var(&lineDelay, "line-delay", 0.0, "Seconds to wait after every instruction")
	fs.Float64Var(&lineDelay, "l", 0.0, "Seconds to wait after every instruction (shorthand)")
	fs.BoolVar(&restartDelay, "restart-delay", false, "Wait the start delay again on RESTART")
	fs.StringVar(&opts.Backend, "backend", "", "Injector backend (log, screen)")
	fs.StringVar(&opts.Backend, "b", "", "Injector backend (shorthand)")
	fs.BoolVar(&normalize, "normalize", false, "Rewrite the macro file in canonical form before playing")
	fs.BoolVar(&normalize, "n", false, "Rewrite the macro file in canonical form (shorthand)")
	fs.BoolVar(&opts.Check, "check", false, "Build and print the macro without playing it")
	fs.BoolVar(&opts.Watch, "watch", false, "Check again whenever the macro file changes (implies --check)")
	fs.StringVar(&opts.Report, "report", "", "Write a JSON playback report to this file")
	fs.StringVar(&opts.Summary, "summary", "", "Print the summary of a JSON report and exit")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "keyplay - play scripted keyboard macros\n\n")
		fmt.Fprintf(stderr, "Usage: keyplay [options] [macro-file]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  keyplay                       Play m/test.pym after 1s\n")
		fmt.Fprintf(stderr, "  keyplay -s 3 -l 0.2 farm.pym  Play farm.pym slowly\n")
		fmt.Fprintf(stderr, "  keyplay --watch x.pym         Re-check x.pym on every save\n")
		fmt.Fprintf(stderr, "  keyplay -b screen -n x.pym    Normalize, then play on the terminal\n")
		fmt.Fprintf(stderr, "  keyplay --summary run.json    Show how a reported run ended\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, exitOK, true
		}
		return opts, exitFailure, true
	}

	if showHelp {
		fs.Usage()
		return opts, exitOK, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "keyplay %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, exitOK, true
	}

	// Validate log level
	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return opts, exitFailure, true
		}
	}

	// Only flags given on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start-delay", "s":
			opts.StartDelay = &startDelay
		case "line-delay", "l":
			opts.LineDelay = &lineDelay
		case "restart-delay":
			opts.RestartDelay = &restartDelay
		case "normalize", "n":
			opts.Normalize = &normalize
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		opts.Macro = fs.Arg(0)
	default:
		fmt.Fprintf(stderr, "Error: expected one macro file, got %d\n", fs.NArg())
		return opts, exitFailure, true
	}

	return opts, exitOK, false
}
