//go:build linux

package proc

import "log/slog"

func newSource(log *slog.Logger) Source {
	return &procfsSource{root: "/proc", log: log}
}
