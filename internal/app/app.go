// Package app wires the layout switcher, its windows and the tray together.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"klayout/internal/autostart"
	"klayout/internal/config"
	"klayout/internal/dialog"
	"klayout/internal/hotkey"
	"klayout/internal/i18n"
	"klayout/internal/layout"
	"klayout/internal/loop"
	"klayout/internal/notify"
	"klayout/internal/popup"
	"klayout/internal/recovery"
	"klayout/internal/settings"
	"klayout/internal/switcher"
	"klayout/internal/toolbar"
	"klayout/internal/tray"
	"klayout/internal/wm"
	"klayout/internal/xkb"
)

// topmostInterval is how often the toolbar re-asserts always-on-top.
const topmostInterval = 100 * time.Millisecond

// Options are the command line settings.
type Options struct {
	ConfigPath string
	EvdevPath  string
}

// App is the running widget.
type App struct {
	log    *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc

	config    *config.Config
	registry  *xkb.Registry
	loop      *loop.Loop
	ctrl      *recovery.Controller
	wm        *wm.Manager
	toolbar   *toolbar.Toolbar
	popup     *popup.Popup
	tray      *tray.Tray
	hotkey    *hotkey.Handler
	notifier  *notify.Notifier
	autostart *autostart.Entry

	dialogs sync.Mutex
	restart atomic.Bool
	loopErr chan error
}

// New loads the configuration and builds every component. An invalid
// layout list is returned as a *layout.ConfigurationError.
func New(ctx context.Context, opts Options, log *zap.SugaredLogger) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lang := cfg.UILanguage(); lang != "" {
		i18n.SetLanguage(i18n.Language(lang))
	}

	layouts, err := layout.ParseList(cfg.Layouts())
	if err != nil {
		return nil, err
	}
	rotator, err := layout.NewRotator(layouts)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:       log,
		config:    cfg,
		loop:      loop.New(64),
		notifier:  notify.New(cfg.NotificationsEnabled()),
		autostart: autostart.New(),
		loopErr:   make(chan error, 1),
	}
	a.ctx, a.cancel = context.WithCancel(ctx)

	a.registry, err = xkb.ParseLayouts(opts.EvdevPath)
	if err != nil {
		log.Warnw("xkb registry unavailable, layouts will be typed in", "path", opts.EvdevPath, "error", err)
		a.registry = nil
	}

	// nil interfaces, not typed nils, when there is no display
	var (
		toolbarWM toolbar.WindowManager
		popupWM   popup.WindowManager
	)
	a.wm, err = wm.Connect()
	if err != nil {
		log.Warnw("window placement disabled", "error", err)
		a.wm = nil
	} else {
		toolbarWM, popupWM = a.wm, a.wm
	}

	style, err := toolbar.NewStyle(cfg.Settings())
	if err != nil {
		log.Warnw("invalid toolbar style, using defaults", "error", err)
		style = toolbar.DefaultStyle()
	}
	a.toolbar = toolbar.New(toolbar.DefaultConfig(), style, toolbarWM, log.Named("toolbar"))
	a.popup = popup.New(popup.DefaultConfig(), popupWM, a.toolbar.Anchor, log.Named("popup"))

	applier := switcher.Setxkbmap{
		Path:    cfg.SetxkbmapPath(),
		Timeout: cfg.ApplyTimeout(),
	}
	a.ctrl = recovery.New(rotator, applier, a.popup, a.loop, log.Named("recovery"))

	a.tray = tray.New(tray.Callbacks{
		OnNext:                a.next,
		OnNotificationsToggle: a.toggleNotifications,
		OnSettings:            func() { go a.openSettings() },
		OnAbout:               func() { go dialog.ShowAbout() },
		OnQuit:                a.Quit,
	}, cfg.NotificationsEnabled())

	a.hotkey = hotkey.New(a.next, log.Named("hotkey"))

	a.wire()
	return a, nil
}

// wire connects the controller and the windows. Everything touching the
// controller is posted to the loop.
func (a *App) wire() {
	a.ctrl.OnApplied(func(l layout.Layout) {
		a.toolbar.SetText(l.Language())
		a.tray.SetLayout(l.Language())
		a.tray.SetState(tray.StateOK)
		a.systemdStatus(l)
	})
	a.ctrl.OnAutoSkip(func(p recovery.Pending) {
		details := ""
		if p.Failure != nil {
			details = p.Failure.Details()
		}
		a.notifier.Skipped(p.Layout.String(), details)
	})
	a.ctrl.OnTransition(func(from, to recovery.State) {
		a.log.Debugw("state", "from", from, "to", to)
		switch to {
		case recovery.CountdownRunning:
			a.tray.SetState(tray.StateError)
		case recovery.AutoSkipped, recovery.ManualSkipped:
			a.tray.SetState(tray.StateOK)
		}
	})

	a.popup.OnRetry(func(id uint64) {
		a.loop.Post(func() { a.ctrl.Retry(a.ctx, id) })
	})
	a.popup.OnSkip(func(id uint64) {
		a.loop.Post(func() { a.ctrl.Skip(id) })
	})
	a.popup.OnDismiss(func(id uint64) {
		a.loop.Post(func() { a.ctrl.Dismissed(id) })
	})

	a.toolbar.OnMenu(a.showContextMenu)
	a.toolbar.OnClose(func() { go a.Quit() })
}

// next switches to the following layout.
func (a *App) next() {
	a.loop.Post(func() { a.ctrl.Next(a.ctx) })
}

// Run shows the widget and blocks until it quits. When settings were
// saved it re-executes the binary and only returns on failure.
func (a *App) Run() error {
	go func() {
		a.loopErr <- a.loop.Run(a.ctx)
	}()

	a.toolbar.Show()

	// the first layout of the list is applied at startup
	a.next()
	a.loop.Ticker(a.ctx, topmostInterval, a.toolbar.KeepOnTop)

	go func() {
		if err := a.systemdNotifyLoop(a.ctx); err != nil && a.ctx.Err() == nil {
			a.log.Warnw("systemd notify", "error", err)
		}
	}()
	go func() {
		<-a.ctx.Done()
		a.Quit()
	}()

	a.log.Infow("started",
		"layouts", a.config.Layouts(),
		"cycle_length", a.ctrl.Rotator().Len(),
		"hotkey", a.config.Hotkey().String(),
	)

	a.tray.Run(func() {
		hk := a.config.Hotkey()
		if err := a.hotkey.Register(hk); err != nil {
			a.log.Errorw("register hotkey", "hotkey", hk.String(), "error", err)
			a.notifier.Error(i18n.T("error_hotkey_register") + ": " + hk.String())
		}
	})

	a.shutdown()

	if a.restart.Load() {
		return a.reexec()
	}
	return nil
}

// Quit makes Run return.
func (a *App) Quit() {
	a.tray.Quit()
}

func (a *App) shutdown() {
	a.log.Info("shutting down")

	if err := a.hotkey.Unregister(); err != nil {
		a.log.Debugw("unregister hotkey", "error", err)
	}

	a.cancel()
	select {
	case <-a.loopErr:
	case <-time.After(time.Second):
		a.log.Warn("loop did not stop")
	}

	a.popup.Dismiss()
	a.toolbar.Close()
	if a.wm != nil {
		a.wm.Close()
	}
}

func (a *App) toggleNotifications() bool {
	enabled, err := a.config.ToggleNotifications()
	if err != nil {
		a.log.Warnw("save notifications setting", "error", err)
	}
	a.notifier.SetEnabled(enabled)
	return enabled
}

// showContextMenu runs on its own goroutine, one dialog at a time.
func (a *App) showContextMenu() {
	if !a.dialogs.TryLock() {
		return
	}
	action, err := dialog.ContextMenu()
	a.dialogs.Unlock()

	if err != nil {
		a.log.Warnw("context menu", "error", err)
		return
	}

	switch action {
	case dialog.MenuSettings:
		a.openSettings()
	case dialog.MenuAbout:
		dialog.ShowAbout()
	case dialog.MenuExit:
		a.Quit()
	}
}

// openSettings runs the settings flow and restarts on Save.
func (a *App) openSettings() {
	if !a.dialogs.TryLock() {
		return
	}
	defer a.dialogs.Unlock()

	flow := settings.New(settings.Zenity{}, a.registry, a.log.Named("settings"))
	s, updated, err := flow.Run(a.config.Settings())
	if err != nil {
		a.log.Errorw("settings", "error", err)
		return
	}
	if !updated {
		return
	}

	if err := a.config.Update(s); err != nil {
		a.log.Errorw("save settings", "path", a.config.Path(), "error", err)
		dialog.ShowError(i18n.T("error_settings_save"), err.Error())
		return
	}
	a.syncAutostart(s.RunOnStartup)

	a.log.Info("settings saved, restarting")
	a.restart.Store(true)
	a.Quit()
}

func (a *App) syncAutostart(enabled bool) {
	exe, err := os.Executable()
	if err != nil {
		a.log.Warnw("resolve executable", "error", err)
		return
	}
	if err := a.autostart.Set(enabled, exe); err != nil {
		a.log.Warnw("autostart", "path", a.autostart.Path(), "error", err)
		a.notifier.Error(i18n.T("error_autostart"))
	}
}
