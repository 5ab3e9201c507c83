package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benaskins/specto/internal/render"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all running processes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		procs, err := app.source.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing processes: %w", err)
		}
		if len(procs) == 0 {
			return errors.New("no processes found")
		}

		switch {
		case flagJSON:
			return render.ListJSON(os.Stdout, procs)
		case flagShort:
			render.ListShort(os.Stdout, procs)
		default:
			render.List(os.Stdout, app.styles, procs)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(psCmd)
}
