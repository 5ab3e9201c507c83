//go:build !linux && !darwin

package netstat

import (
	"context"
	"log/slog"
)

func newResolver(log *slog.Logger) Resolver {
	return unsupportedResolver{}
}

type unsupportedResolver struct{}

func (unsupportedResolver) Resolve(context.Context, int) ([]Connection, error) {
	return nil, ErrUnsupported
}
