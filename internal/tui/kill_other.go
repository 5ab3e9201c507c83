//go:build !unix

package tui

import "errors"

func Terminate(pid int) (Outcome, error) {
	return OutcomeFailed, errors.New("signals unsupported on this platform")
}
