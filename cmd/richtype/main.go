// Package main is the entry point for the richtype command.
//
// richtype reads an HTML fragment, loads it into an editor, optionally
// applies a formatting command or a Lua script to it and writes the
// resulting markup. With -tui the fragment is edited interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/editor"
	"github.com/dshills/richtype/internal/input"
	"github.com/dshills/richtype/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	Watch      bool
	Script     string
	Format     string
	Start      int
	End        int
	Output     string
	TUI        bool
	LogLevel   string
	Input      string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger := newLogger(opts.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, opts, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("richtype", flag.ContinueOnError)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to an options file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to an options file (shorthand)")
	fs.BoolVar(&opts.Watch, "watch", false, "Reload the options file when it changes (with -tui)")
	fs.StringVar(&opts.Script, "lua", "", "Lua script to run against the editor")
	fs.StringVar(&opts.Format, "format", "", "Formatting command to apply (e.g., strong, h1)")
	fs.StringVar(&opts.Format, "f", "", "Formatting command to apply (shorthand)")
	fs.IntVar(&opts.Start, "start", 0, "Selection start, in characters")
	fs.IntVar(&opts.End, "end", -1, "Selection end, in characters (default: end of content)")
	fs.StringVar(&opts.Output, "o", "", "Write the result to a file instead of stdout")
	fs.BoolVar(&opts.TUI, "tui", false, "Edit interactively in the terminal")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "richtype - rich text formatting for HTML fragments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richtype [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  richtype -f strong -start 0 -end 5 page.html   Bold the first five characters\n")
		fmt.Fprintf(os.Stderr, "  richtype -f h1 < page.html                      Make the first block a heading\n")
		fmt.Fprintf(os.Stderr, "  richtype -lua macros.lua -tui page.html         Edit with key handlers from Lua\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if showVersion {
		fmt.Printf("richtype %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, flag.ErrHelp
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.Input = fs.Arg(0)
	default:
		return opts, errors.New("at most one input file")
	}
	return opts, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	_ = l.UnmarshalText([]byte(level))
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func execute(ctx context.Context, opts options, logger *slog.Logger) error {
	markup, err := readInput(opts.Input)
	if err != nil {
		return err
	}
	root, err := dom.Parse(string(markup))
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	ed, err := editor.New(root, editor.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := ed.Close(context.Background()); err != nil {
			logger.Warn("close editor", "err", err)
		}
	}()

	if opts.ConfigPath != "" {
		if opts.Watch && opts.TUI {
			err = ed.Config().Watch(ctx, opts.ConfigPath)
		} else {
			err = ed.Config().Load(ctx, opts.ConfigPath)
		}
		if err != nil {
			return err
		}
	}

	if opts.Script != "" {
		s, err := loadScript(ctx, ed, opts.Script, logger)
		if err != nil {
			return err
		}
		defer s.Close()
	}

	if opts.Format != "" {
		end := opts.End
		if end < 0 {
			end = ed.Document().Len()
		}
		if err := ed.Select(opts.Start, end); err != nil {
			return err
		}
		if err := ed.Format(ctx, opts.Format); err != nil {
			return err
		}
	}

	if opts.TUI {
		if err := runTUI(ctx, ed); err != nil {
			return err
		}
	}

	out, err := ed.HTML()
	if err != nil {
		return err
	}
	return writeOutput(opts.Output, out)
}

// loadScript runs a Lua script with the richtype module installed and
// adds its key handler to the input pipeline.
func loadScript(ctx context.Context, ed *editor.Editor, path string, logger *slog.Logger) (*lua.State, error) {
	s := lua.NewState(lua.WithLogger(logger))
	lua.Install(s, ed)
	if err := s.DoFile(ctx, path); err != nil {
		s.Close()
		return nil, err
	}
	if s.HasFunction(lua.DefaultFilterFunc) {
		_, err := ed.Pipeline().Add(lua.NewFilter(s, lua.DefaultFilterFunc),
			input.WithName("lua"), input.WithPriority(input.PriorityHigh))
		if err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path, out string) error {
	if path == "" {
		_, err := fmt.Println(out)
		return err
	}
	return os.WriteFile(path, []byte(out+"\n"), 0o644)
}
