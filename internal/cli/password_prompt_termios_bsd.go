//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import "golang.org/x/sys/unix"

// BSD-derived kernels name the termios ioctls differently.
const (
	getTermios = unix.TIOCGETA
	setTermios = unix.TIOCSETA
)
