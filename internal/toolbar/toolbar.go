// Package toolbar provides the small always-on-top window that shows the
// active layout.
package toolbar

import (
	"context"
	"image"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"klayout/internal/wm"
)

// Title is the window title the toolbar is found by.
const Title = "klayout"

// WindowManager moves the toolbar and keeps it above other windows.
type WindowManager interface {
	ScreenSize() (width, height int)
	WaitForWindow(ctx context.Context, name string, timeout time.Duration) (wm.Window, error)
	Geometry(win wm.Window) (wm.Rect, error)
	Move(win wm.Window, x, y int) error
	SetAbove(win wm.Window) error
}

// Config holds window configuration.
type Config struct {
	Width        int // dp
	Height       int // dp
	PlaceTimeout time.Duration
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:        25,
		Height:       30,
		PlaceTimeout: 3 * time.Second,
	}
}

// Toolbar is a borderless window showing a language code.
type Toolbar struct {
	mu     sync.Mutex
	config Config
	style  Style
	wm     WindowManager
	log    *zap.SugaredLogger
	text   string

	window *app.Window
	xwin   wm.Window
	rect   wm.Rect
	placed bool
	drag   drag

	onMenu  func()
	onClose func()
	doneCh  chan struct{}
}

// New creates a toolbar; call Show to open it. wm may be nil, in which
// case the window is neither placed nor draggable.
func New(cfg Config, style Style, manager WindowManager, log *zap.SugaredLogger) *Toolbar {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Toolbar{
		config: cfg,
		style:  style,
		wm:     manager,
		log:    log,
	}
}

// OnMenu sets the callback for a right click.
func (t *Toolbar) OnMenu(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onMenu = fn
}

// OnClose sets the callback for the window being destroyed.
func (t *Toolbar) OnClose(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClose = fn
}

// Show opens the window (non-blocking).
func (t *Toolbar) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window != nil {
		return
	}
	t.window = new(app.Window)
	t.doneCh = make(chan struct{})
	go t.runEventLoop(t.window, t.doneCh)
}

// Close closes the window and waits briefly for it to go away.
func (t *Toolbar) Close() {
	t.mu.Lock()
	w := t.window
	done := t.doneCh
	t.mu.Unlock()

	if w == nil {
		return
	}
	w.Perform(system.ActionClose)

	select {
	case <-done:
	case <-time.After(time.Second):
	}
}

// SetText replaces the label.
func (t *Toolbar) SetText(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.text = s
	if t.window != nil {
		t.window.Invalidate()
	}
}

// Text returns the label.
func (t *Toolbar) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}

// Anchor returns the window rectangle once the window has been placed.
func (t *Toolbar) Anchor() (wm.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rect, t.placed
}

// KeepOnTop re-asserts the always-on-top state. Window managers such as
// JWM drop it when another window is raised, so it is called repeatedly.
func (t *Toolbar) KeepOnTop() {
	t.mu.Lock()
	xwin, placed := t.xwin, t.placed
	t.mu.Unlock()

	if !placed || t.wm == nil {
		return
	}
	if err := t.wm.SetAbove(xwin); err != nil {
		t.log.Debugw("keep toolbar on top", "error", err)
	}
}

func (t *Toolbar) runEventLoop(w *app.Window, done chan struct{}) {
	defer close(done)

	w.Option(
		app.Title(Title),
		app.Size(unit.Dp(t.config.Width), unit.Dp(t.config.Height)),
		app.MinSize(unit.Dp(t.config.Width), unit.Dp(t.config.Height)),
		app.Decorated(false),
	)

	go t.place()

	th := material.NewTheme()
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			t.mu.Lock()
			t.window = nil
			t.placed = false
			fn := t.onClose
			t.mu.Unlock()
			if fn != nil {
				fn()
			}
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			t.handlePointer(gtx)
			t.draw(gtx, th)
			e.Frame(gtx.Ops)
		}
	}
}

// place moves the window to the bottom-right corner once it is mapped.
func (t *Toolbar) place() {
	if t.wm == nil {
		return
	}

	win, err := t.wm.WaitForWindow(context.Background(), Title, t.config.PlaceTimeout)
	if err != nil {
		t.log.Warnw("toolbar window not found", "error", err)
		return
	}

	rect, err := t.wm.Geometry(win)
	if err != nil {
		t.log.Warnw("toolbar geometry", "error", err)
		return
	}

	sw, sh := t.wm.ScreenSize()
	rect.X, rect.Y = wm.BottomRight(rect.Width, rect.Height, sw, sh)
	if err := t.wm.Move(win, rect.X, rect.Y); err != nil {
		t.log.Warnw("move toolbar", "error", err)
	}

	t.mu.Lock()
	t.xwin = win
	t.rect = rect
	t.placed = true
	t.mu.Unlock()

	t.KeepOnTop()
	t.log.Debugw("toolbar placed", "x", rect.X, "y", rect.Y, "w", rect.Width, "h", rect.Height)
}

func (t *Toolbar) handlePointer(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		switch e.Kind {
		case pointer.Press:
			if e.Buttons.Contain(pointer.ButtonSecondary) {
				t.mu.Lock()
				fn := t.onMenu
				t.mu.Unlock()
				if fn != nil {
					go fn()
				}
			} else if e.Buttons.Contain(pointer.ButtonPrimary) {
				t.drag.start(e.Position)
			}
		case pointer.Drag:
			if t.drag.active {
				t.moveTo(e.Position)
			}
		case pointer.Release, pointer.Cancel:
			t.drag.stop()
		}
	}
}

func (t *Toolbar) moveTo(at f32.Point) {
	t.mu.Lock()
	rect, xwin, placed := t.rect, t.xwin, t.placed
	t.mu.Unlock()

	if !placed || t.wm == nil {
		return
	}

	_, sh := t.wm.ScreenSize()
	pt := t.drag.target(rect, at, sh)
	if pt.X == rect.X && pt.Y == rect.Y {
		return
	}
	if err := t.wm.Move(xwin, pt.X, pt.Y); err != nil {
		t.log.Debugw("drag toolbar", "error", err)
		return
	}

	t.mu.Lock()
	t.rect.X, t.rect.Y = pt.X, pt.Y
	t.mu.Unlock()
}

func (t *Toolbar) draw(gtx layout.Context, th *material.Theme) {
	t.mu.Lock()
	label := t.text
	style := t.style
	t.mu.Unlock()

	size := gtx.Constraints.Max
	paint.FillShape(gtx.Ops, style.Background, clip.Rect{Max: size}.Op())

	area := clip.Rect{Max: size}.Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	if t.drag.active {
		pointer.CursorGrab.Add(gtx.Ops)
	}
	area.Pop()

	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		lbl := material.Label(th, unit.Sp(float32(style.Font.Size)), label)
		lbl.Color = style.Foreground
		lbl.Font = style.gioFont()
		lbl.Alignment = text.Middle
		lbl.MaxLines = 1
		return lbl.Layout(gtx)
	})
}
