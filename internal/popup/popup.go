// Package popup implements the retry/skip window shown after a failed
// layout switch.
package popup

import (
	"context"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"klayout/internal/i18n"
	"klayout/internal/recovery"
	"klayout/internal/wm"
)

// WindowManager places the popup on screen.
type WindowManager interface {
	WaitForWindow(ctx context.Context, name string, timeout time.Duration) (wm.Window, error)
	Geometry(win wm.Window) (wm.Rect, error)
	Move(win wm.Window, x, y int) error
	SetAbove(win wm.Window) error
}

// Config holds window configuration.
type Config struct {
	Width        int
	Height       int
	BGColor      color.NRGBA
	TextColor    color.NRGBA
	DimColor     color.NRGBA
	RetryColor   color.NRGBA
	SkipColor    color.NRGBA
	PlaceTimeout time.Duration
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:        420,
		Height:       150,
		BGColor:      color.NRGBA{R: 30, G: 30, B: 34, A: 255},
		TextColor:    color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		DimColor:     color.NRGBA{R: 160, G: 160, B: 170, A: 255},
		RetryColor:   color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		SkipColor:    color.NRGBA{R: 90, G: 90, B: 100, A: 255},
		PlaceTimeout: 2 * time.Second,
	}
}

// Content is the text shown for one pending failure.
type Content struct {
	Header  string
	Details string
	Retry   string
	Skip    string
}

// NewContent renders the popup text for p with remaining seconds left.
func NewContent(p recovery.Pending, remaining int) Content {
	details := ""
	if p.Failure != nil {
		details = p.Failure.Details()
	}
	return Content{
		Header:  i18n.Tf("popup_header", p.Layout.String()),
		Details: i18n.Tf("popup_details", details),
		Retry:   i18n.T("popup_retry"),
		Skip:    i18n.Tf("popup_skip", remaining),
	}
}

// session is one open window.
type session struct {
	window  *app.Window
	stopCh  chan struct{}
	closing atomic.Bool

	retryBtn widget.Clickable
	skipBtn  widget.Clickable
}

// Popup is the error surface. Show, SetCountdown and Dismiss never block.
type Popup struct {
	mu        sync.Mutex
	config    Config
	wm        WindowManager
	anchor    func() (wm.Rect, bool)
	log       *zap.SugaredLogger
	pending   recovery.Pending
	remaining int
	cur       *session

	onRetry   func(id uint64)
	onSkip    func(id uint64)
	onDismiss func(id uint64)
}

// New creates a hidden popup. anchor reports the rectangle the popup is
// placed above; wm may be nil when the display cannot be queried.
func New(cfg Config, manager WindowManager, anchor func() (wm.Rect, bool), log *zap.SugaredLogger) *Popup {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Popup{
		config: cfg,
		wm:     manager,
		anchor: anchor,
		log:    log,
	}
}

// OnRetry sets the callback for the Retry button. Callbacks get the ID of
// the failure that was on screen.
func (p *Popup) OnRetry(fn func(id uint64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onRetry = fn
}

// OnSkip sets the callback for the Skip button and the Escape key.
func (p *Popup) OnSkip(fn func(id uint64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onSkip = fn
}

// OnDismiss sets the callback for the window being closed by the user.
func (p *Popup) OnDismiss(fn func(id uint64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDismiss = fn
}

// Show opens the popup for pending, or replaces the content of the one
// already open.
func (p *Popup) Show(pending recovery.Pending) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = pending
	p.remaining = pending.Remaining

	if p.cur != nil {
		p.cur.window.Invalidate()
		return
	}

	s := &session{
		window: new(app.Window),
		stopCh: make(chan struct{}),
	}
	p.cur = s
	go p.runEventLoop(s)
}

// SetCountdown updates the seconds shown on the Skip button.
func (p *Popup) SetCountdown(remaining int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.remaining = remaining
	if p.cur != nil {
		p.cur.window.Invalidate()
	}
}

// Dismiss closes the popup without reporting it as a user action.
func (p *Popup) Dismiss() {
	p.mu.Lock()
	s := p.cur
	p.cur = nil
	p.mu.Unlock()

	if s == nil {
		return
	}
	s.closing.Store(true)
	close(s.stopCh)
}

// visible reports whether a window is open.
func (p *Popup) visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur != nil
}

func (p *Popup) runEventLoop(s *session) {
	title := i18n.T("popup_title")
	s.window.Option(
		app.Title(title),
		app.Size(unit.Dp(p.config.Width), unit.Dp(p.config.Height)),
		app.Decorated(false),
	)

	go p.place(s, title)

	go func() {
		<-s.stopCh
		s.window.Perform(system.ActionClose)
	}()

	th := material.NewTheme()
	var ops op.Ops
	for {
		switch e := s.window.Event().(type) {
		case app.DestroyEvent:
			p.destroyed(s)
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			p.draw(gtx, th, s)
			e.Frame(gtx.Ops)
		}
	}
}

// destroyed handles the window going away. Unless Dismiss closed it, the
// user did, and that counts as a dismissal.
func (p *Popup) destroyed(s *session) {
	if s.closing.Load() {
		return
	}

	p.mu.Lock()
	if p.cur == s {
		p.cur = nil
	}
	fn, id := p.onDismiss, p.pending.ID
	p.mu.Unlock()

	if fn != nil {
		fn(id)
	}
}

func (p *Popup) place(s *session, title string) {
	if p.wm == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	win, err := p.wm.WaitForWindow(ctx, title, p.config.PlaceTimeout)
	if err != nil {
		p.log.Debugw("popup window not found", "error", err)
		return
	}

	if p.anchor != nil {
		if anchor, ok := p.anchor(); ok {
			own, err := p.wm.Geometry(win)
			if err != nil {
				p.log.Debugw("popup geometry", "error", err)
				return
			}
			x, y := wm.Above(anchor, own.Height)
			if err := p.wm.Move(win, x, y); err != nil {
				p.log.Debugw("move popup", "error", err)
			}
		}
	}

	if err := p.wm.SetAbove(win); err != nil {
		p.log.Debugw("popup topmost", "error", err)
	}
}

func (p *Popup) draw(gtx layout.Context, th *material.Theme, s *session) {
	for {
		ev, ok := gtx.Event(key.Filter{Name: key.NameEscape})
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok && e.State == key.Press {
			p.fire(p.skipCallback())
		}
	}

	if s.retryBtn.Clicked(gtx) {
		p.fire(p.retryCallback())
	}
	if s.skipBtn.Clicked(gtx) {
		p.fire(p.skipCallback())
	}

	p.mu.Lock()
	content := NewContent(p.pending, p.remaining)
	p.mu.Unlock()

	drawPopup(gtx, th, p.config, content, &s.retryBtn, &s.skipBtn)
}

func (p *Popup) retryCallback() func(uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onRetry
}

func (p *Popup) skipCallback() func(uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.onSkip
}

// fire runs fn off the window goroutine for the failure on screen.
func (p *Popup) fire(fn func(uint64)) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	id := p.pending.ID
	p.mu.Unlock()
	go fn(id)
}
