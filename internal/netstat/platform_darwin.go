//go:build darwin

package netstat

import "log/slog"

func newResolver(log *slog.Logger) Resolver {
	return &lsofResolver{log: log}
}
