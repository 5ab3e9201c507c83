package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benaskins/specto/internal/proc"
	"github.com/benaskins/specto/internal/render"
)

var (
	flagTree bool
	flagEnv  bool
)

var pidCmd = &cobra.Command{
	Use:   "pid <pid>",
	Short: "Explain a specific process",
	Long:  "Show metadata for one process: owner, state, memory, command line. --tree walks the ancestry chain, --env dumps the environment.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPID,
}

func init() {
	pidCmd.Flags().BoolVar(&flagTree, "tree", false, "show full process ancestry tree")
	pidCmd.Flags().BoolVar(&flagEnv, "env", false, "show only environment variables for the process")
	pidCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "prompt to kill the process")
	rootCmd.AddCommand(pidCmd)
}

func runPID(cmd *cobra.Command, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid PID: %s", args[0])
	}
	if pid < 1 {
		return errors.New("PID must be positive")
	}

	if flagTree && flagEnv {
		return errors.New("cannot combine --tree and --env")
	}
	if flagShort && (flagTree || flagEnv) {
		return errors.New("cannot combine --short with --tree or --env")
	}
	if err := checkInteractive(); err != nil {
		return err
	}

	info, err := app.source.Get(pid)
	if err != nil {
		return pidError(pid, err)
	}

	switch {
	case flagEnv:
		env, err := app.source.Environ(pid)
		if err != nil {
			return envError(pid, err)
		}
		if flagJSON {
			return render.EnvironJSON(os.Stdout, env)
		}
		render.Environ(os.Stdout, app.styles, env)

	case flagTree:
		chain, err := proc.Ancestry(app.source, pid)
		if err != nil {
			return fmt.Errorf("building ancestry for PID %d: %w", pid, err)
		}
		if flagJSON {
			return render.TreeJSON(os.Stdout, chain)
		}
		render.Tree(os.Stdout, app.styles, chain)

	default:
		switch {
		case flagJSON:
			return render.ProcessJSON(os.Stdout, info)
		case flagShort:
			render.ProcessShort(os.Stdout, info)
		default:
			render.Process(os.Stdout, app.styles, info)
		}
		if flagInteractive {
			return confirmAndKill(info)
		}
	}
	return nil
}

func pidError(pid int, err error) error {
	switch {
	case errors.Is(err, proc.ErrNotFound):
		return fmt.Errorf("no process with PID %d", pid)
	case errors.Is(err, proc.ErrPermissionDenied):
		return fmt.Errorf("permission denied reading PID %d", pid)
	case errors.Is(err, proc.ErrUnsupported):
		return errors.New("process inspection is not supported on this platform")
	}
	return fmt.Errorf("reading PID %d: %w", pid, err)
}

func envError(pid int, err error) error {
	switch {
	case errors.Is(err, proc.ErrNotFound):
		return fmt.Errorf("no process with PID %d", pid)
	case errors.Is(err, proc.ErrPermissionDenied):
		return fmt.Errorf("permission denied reading environment of PID %d", pid)
	}
	return fmt.Errorf("reading environment of PID %d: %w", pid, err)
}
