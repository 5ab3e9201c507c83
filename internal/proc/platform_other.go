//go:build !linux && !darwin

package proc

import (
	"context"
	"log/slog"
)

func newSource(log *slog.Logger) Source {
	return unsupportedSource{}
}

type unsupportedSource struct{}

func (unsupportedSource) Get(int) (Process, error)                { return Process{}, ErrUnsupported }
func (unsupportedSource) List(context.Context) ([]Process, error) { return nil, ErrUnsupported }
func (unsupportedSource) Environ(int) ([]string, error)           { return nil, ErrUnsupported }
