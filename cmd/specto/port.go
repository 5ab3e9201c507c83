package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benaskins/specto/internal/netstat"
	"github.com/benaskins/specto/internal/proc"
	"github.com/benaskins/specto/internal/render"
)

var flagWarnings bool

var portCmd = &cobra.Command{
	Use:   "port <port>",
	Short: "Explain what is using a TCP port",
	Long:  "Resolve a port to its connections and their owning processes. --warnings reports only security findings for the port.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPort,
}

func init() {
	portCmd.Flags().BoolVar(&flagWarnings, "warnings", false, "show only warnings")
	portCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "prompt to kill the owning process")
	rootCmd.AddCommand(portCmd)
}

func runPort(cmd *cobra.Command, args []string) error {
	port, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid port number: %s", args[0])
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if err := checkInteractive(); err != nil {
		return err
	}

	conns, err := app.ports.Resolve(cmd.Context(), port)
	if err != nil {
		return portError(port, err)
	}
	if len(conns) == 0 {
		return fmt.Errorf("no connections found on port %d", port)
	}

	rep := render.PortReport{Port: port, Conns: conns, Owners: ownersOf(conns)}

	switch {
	case flagWarnings:
		render.PortWarnings(os.Stdout, app.styles, rep)
	case flagJSON:
		return render.PortJSON(os.Stdout, rep)
	case flagShort:
		render.PortShort(os.Stdout, rep)
	default:
		render.Port(os.Stdout, app.styles, rep)
	}

	// The prompt targets the first connection with resolved details.
	if flagInteractive {
		if first := conns[0]; first.HasOwner() {
			if owner, ok := rep.Owners[first.PID]; ok {
				return confirmAndKill(owner)
			}
		}
	}
	return nil
}

// ownersOf enriches resolved owner pids with full process details. A
// pid whose details cannot be read (the owner exited, or is another
// user's) stays out of the map and renders as detail-less.
func ownersOf(conns []netstat.Connection) map[int]proc.Process {
	owners := make(map[int]proc.Process)
	for _, c := range conns {
		if !c.HasOwner() {
			continue
		}
		if _, done := owners[c.PID]; done {
			continue
		}
		p, err := app.source.Get(c.PID)
		if err != nil {
			app.log.Debug("owner details unavailable", "pid", c.PID, "err", err)
			continue
		}
		owners[c.PID] = p
	}
	return owners
}

func portError(port int, err error) error {
	switch {
	case errors.Is(err, netstat.ErrUnsupported):
		return errors.New("port inspection is not supported on this platform")
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("permission denied querying port %d: you may need elevated privileges", port)
	}
	return fmt.Errorf("querying port %d: %w", port, err)
}
