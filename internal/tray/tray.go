// Package tray provides the system tray icon and menu.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"klayout/embedded"
	"klayout/internal/i18n"
)

// State selects the tray icon.
type State int

const (
	StateOK State = iota
	StateError
)

// Callbacks are the menu handlers. They run on the tray goroutine.
type Callbacks struct {
	OnNext                func()
	OnNotificationsToggle func() bool
	OnSettings            func()
	OnAbout               func()
	OnQuit                func()
}

// Tray manages the tray icon.
type Tray struct {
	callbacks     Callbacks
	notifications bool

	mu    sync.Mutex
	ready bool
	code  string
	state State

	layout   *systray.MenuItem
	next     *systray.MenuItem
	notifyOn *systray.MenuItem
	settings *systray.MenuItem
	about    *systray.MenuItem
	quit     *systray.MenuItem
}

// New creates a tray. notifications is the initial checkbox state.
func New(callbacks Callbacks, notifications bool) *Tray {
	return &Tray{
		callbacks:     callbacks,
		notifications: notifications,
	}
}

// Run shows the tray icon and blocks until Quit.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {})
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.Icon)
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.layout = systray.AddMenuItem(i18n.Tf("tray_layout", "-"), "")
	t.layout.Disable()
	t.next = systray.AddMenuItem(i18n.T("tray_next"), i18n.T("tray_next_hint"))

	systray.AddSeparator()

	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.notifications)
	t.settings = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))
	t.about = systray.AddMenuItem(i18n.T("tray_about"), "")

	systray.AddSeparator()

	t.quit = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	t.mu.Lock()
	t.ready = true
	code, state := t.code, t.state
	t.mu.Unlock()
	if code != "" {
		t.SetLayout(code)
	}
	t.SetState(state)

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.next.ClickedCh:
			call(t.callbacks.OnNext)

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle == nil {
				continue
			}
			if t.callbacks.OnNotificationsToggle() {
				t.notifyOn.Check()
			} else {
				t.notifyOn.Uncheck()
			}

		case <-t.settings.ClickedCh:
			call(t.callbacks.OnSettings)

		case <-t.about.ClickedCh:
			call(t.callbacks.OnAbout)

		case <-t.quit.ClickedCh:
			call(t.callbacks.OnQuit)
			return
		}
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

// SetLayout shows code as the active layout. Calls before the tray is
// ready are applied once it is.
func (t *Tray) SetLayout(code string) {
	t.mu.Lock()
	t.code = code
	ready := t.ready
	t.mu.Unlock()
	if !ready {
		return
	}

	systray.SetTitle(code)
	systray.SetTooltip(i18n.T("app_name") + " - " + code)
	t.layout.SetTitle(i18n.Tf("tray_layout", code))
}

// SetState switches the icon.
func (t *Tray) SetState(state State) {
	t.mu.Lock()
	t.state = state
	ready := t.ready
	t.mu.Unlock()
	if !ready {
		return
	}

	switch state {
	case StateError:
		systray.SetIcon(embedded.IconError)
	default:
		systray.SetIcon(embedded.Icon)
	}
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}
