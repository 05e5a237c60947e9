//go:build windows

package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func withEchoDisabled(stdin *os.File, fn func() error) error {
	if stdin == nil {
		return errors.New("stdin unavailable")
	}

	console := windows.Handle(stdin.Fd())
	var restore uint32
	if err := windows.GetConsoleMode(console, &restore); err != nil {
		return fmt.Errorf("stdin is not a console: %w", err)
	}
	if err := windows.SetConsoleMode(console, restore&^windows.ENABLE_ECHO_INPUT); err != nil {
		return fmt.Errorf("disable echo: %w", err)
	}
	defer func() {
		_ = windows.SetConsoleMode(console, restore)
	}()

	return fn()
}
