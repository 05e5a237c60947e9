//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func withEchoDisabled(_ *os.File, _ func() error) error {
	return errors.New("hidden password entry is not supported on this platform")
}
