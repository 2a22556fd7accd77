package app

import (
	"fmt"
	"os"
	"syscall"
)

// reexec replaces the process with a fresh copy of itself so the saved
// settings take effect. It only returns on failure.
func (a *App) reexec() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}

	a.log.Infow("restarting", "exe", exe)
	if err := syscall.Exec(exe, os.Args, os.Environ()); err != nil {
		return fmt.Errorf("restart %s: %w", exe, err)
	}
	return nil
}
