// Package notify shows desktop notifications.
package notify

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"klayout/internal/i18n"
)

const maxMessage = 100

// sendFunc delivers one notification.
type sendFunc func(title, message, icon string) error

// Notifier sends desktop notifications while enabled.
type Notifier struct {
	enabled atomic.Bool
	send    sendFunc
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	n := &Notifier{send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
	n.enabled.Store(enabled)
	return n
}

// SetEnabled turns notifications on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

// Skipped reports a layout that was skipped after failing to apply.
func (n *Notifier) Skipped(layout, details string) {
	n.notify(i18n.T("notify_skipped"), i18n.Tf("notify_skipped_msg", layout, details))
}

// Error reports a failure outside the layout switching flow.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	message = truncate(message, maxMessage)
	// notification failures are not worth surfacing
	_ = n.send(i18n.T("app_name")+": "+title, message, "")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
