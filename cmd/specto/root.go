package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/benaskins/specto/internal/config"
	"github.com/benaskins/specto/internal/netstat"
	"github.com/benaskins/specto/internal/proc"
	"github.com/benaskins/specto/internal/render"
)

var version = "0.1.0"

var (
	flagJSON        bool
	flagShort       bool
	flagNoColor     bool
	flagVerbose     bool
	flagInteractive bool
)

// app carries the state every command needs, built once before the
// selected command runs.
var app struct {
	cfg    *config.Config
	log    *slog.Logger
	styles render.Styles
	source proc.Source
	ports  netstat.Resolver
}

var rootCmd = &cobra.Command{
	Use:           "specto",
	Short:         "Explain what a process or a port is doing",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output result as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagShort, "short", false, "one-line summary")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func setup() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	// The config's default format applies only when no format flag was
	// given on the command line.
	if !rootCmd.PersistentFlags().Changed("json") && !rootCmd.PersistentFlags().Changed("short") {
		switch cfg.Format {
		case "json":
			flagJSON = true
		case "short":
			flagShort = true
		}
	}
	if flagJSON && flagShort {
		return errors.New("cannot combine --json and --short")
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app.cfg = cfg
	app.log = log
	app.styles = render.NewStyles(colorEnabled(cfg))
	app.source = proc.New(log)
	app.ports = netstat.New(log)
	return nil
}

// colorEnabled resolves the color gate: the flag beats the config,
// config auto defers to the NO_COLOR convention and a terminal check.
func colorEnabled(cfg *config.Config) bool {
	if flagNoColor {
		return false
	}
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// checkInteractive validates -i against the output flags and the
// terminal, shared by the pid and port commands.
func checkInteractive() error {
	if !flagInteractive {
		return nil
	}
	if flagJSON {
		return errors.New("cannot combine --interactive with --json")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("interactive mode requires a terminal")
	}
	return nil
}
