package app

import (
	"context"
	"fmt"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"klayout/internal/layout"
)

// systemdNotifyLoop reports readiness and, when the unit has a watchdog,
// pings it from the loop goroutine so a stuck loop stops the pings.
func (a *App) systemdNotifyLoop(ctx context.Context) error {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			a.loop.Post(func() {
				if _, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog); err != nil {
					a.log.Warnw("notify watchdog", "error", err)
				}
			})
		}
	}
}

// systemdStatus publishes the active layout as the unit status.
func (a *App) systemdStatus(l layout.Layout) {
	_, _ = daemon.SdNotify(false, "STATUS=Active layout: "+l.String())
}
