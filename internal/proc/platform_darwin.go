//go:build darwin

package proc

import "log/slog"

func newSource(log *slog.Logger) Source {
	return &sysctlSource{log: log}
}
