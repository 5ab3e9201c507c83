//go:build linux

package netstat

import "log/slog"

func newResolver(log *slog.Logger) Resolver {
	return newProcfsResolver(log)
}
