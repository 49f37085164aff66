package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/sharedptr/internal/playground"
	"github.com/wippyai/sharedptr/shared"
)

func main() {
	var (
		scenario    = flag.String("scenario", "", "Replay a reference scenario (basic, clone, all)")
		script      = flag.String("script", "", "Run playground commands from a file (- for stdin)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Log handle lifecycle events")
	)
	flag.Parse()

	if *scenario == "" && *script == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: run -scenario <basic|clone|all> [-v]")
		fmt.Fprintln(os.Stderr, "       run -script <file|-> [-v]")
		fmt.Fprintln(os.Stderr, "       run -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "\nCommands:\n"+playground.Usage)
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		log = l
	}
	defer func() { _ = log.Sync() }()
	shared.SetLogger(log.Named("shared"))

	var err error
	switch {
	case *interactive && term.IsTerminal(int(os.Stdin.Fd())):
		err = runInteractive(log.Named("playground"))
	case *interactive:
		// No terminal to draw on; treat piped stdin as a script.
		err = runScript(log, "-", os.Stdout)
	case *scenario != "":
		err = runScenarios(log, *scenario, os.Stdout)
	default:
		err = runScript(log, *script, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScenarios(log *zap.Logger, name string, w io.Writer) error {
	names := []string{name}
	if name == "all" {
		names = playground.ScenarioNames()
	}

	for i, n := range names {
		src, ok := playground.Scenarios[n]
		if !ok {
			return fmt.Errorf("unknown scenario %q", n)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render("scenario "+n))

		s := playground.NewSession(log.Named("playground"))
		err := s.Run(strings.NewReader(src), w)
		s.Close()
		if err != nil {
			return fmt.Errorf("scenario %s: %w", n, err)
		}
	}
	return nil
}

func runScript(log *zap.Logger, path string, w io.Writer) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	s := playground.NewSession(log.Named("playground"))
	defer s.Close()
	if err := s.Run(r, w); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}
