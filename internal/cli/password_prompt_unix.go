//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func withEchoDisabled(stdin *os.File, fn func() error) error {
	if stdin == nil {
		return errors.New("stdin unavailable")
	}

	fd := int(stdin.Fd())
	saved, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return fmt.Errorf("stdin is not a terminal: %w", err)
	}
	restore := *saved
	silent := restore
	silent.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(fd, setTermios, &silent); err != nil {
		return fmt.Errorf("disable echo: %w", err)
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, setTermios, &restore)
	}()

	return fn()
}
