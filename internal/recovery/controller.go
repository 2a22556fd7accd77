// Package recovery drives layout switching and the retry/skip flow that
// follows a failed switch.
package recovery

import (
	"context"
	"time"

	"go.uber.org/zap"

	"klayout/internal/layout"
	"klayout/internal/loop"
	"klayout/internal/switcher"
)

const (
	// CountdownSeconds is how long the error surface stays up before the
	// failed layout is skipped automatically.
	CountdownSeconds = 10
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
)

// State is a controller state.
type State int

const (
	Idle State = iota
	Applying
	Applied
	Failed
	CountdownRunning
	RetryRequested
	AutoSkipped
	ManualSkipped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Applying:
		return "applying"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	case CountdownRunning:
		return "countdown"
	case RetryRequested:
		return "retry"
	case AutoSkipped:
		return "auto-skipped"
	case ManualSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Pending is the error context of a failed switch. ID identifies the
// failure, so actions aimed at a replaced one can be told apart.
type Pending struct {
	ID        uint64
	Layout    layout.Layout
	Failure   *switcher.ApplyFailure
	Remaining int
}

// Surface is the interactive element offering retry or skip.
type Surface interface {
	Show(p Pending)
	SetCountdown(remaining int)
	Dismiss()
}

type pending struct {
	Pending
	timer loop.Timer
}

// Controller owns the rotation cursor and the pending error context. All
// methods must be called from the loop goroutine.
type Controller struct {
	rotator *layout.Rotator
	applier switcher.Applier
	surface Surface
	sched   loop.Scheduler
	log     *zap.SugaredLogger

	state   State
	pending *pending
	lastID  uint64

	onApplied    []func(layout.Layout)
	onAutoSkip   func(Pending)
	onTransition func(from, to State)
}

// New creates a controller in the Idle state.
func New(
	rotator *layout.Rotator,
	applier switcher.Applier,
	surface Surface,
	sched loop.Scheduler,
	log *zap.SugaredLogger,
) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Controller{
		rotator: rotator,
		applier: applier,
		surface: surface,
		sched:   sched,
		log:     log,
		state:   Idle,
	}
}

// OnApplied registers a callback for successful switches.
func (c *Controller) OnApplied(fn func(layout.Layout)) {
	c.onApplied = append(c.onApplied, fn)
}

// OnAutoSkip sets the callback for a countdown running out.
func (c *Controller) OnAutoSkip(fn func(Pending)) {
	c.onAutoSkip = fn
}

// OnTransition sets an observer for every state change.
func (c *Controller) OnTransition(fn func(from, to State)) {
	c.onTransition = fn
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Pending returns the active error context, if any.
func (c *Controller) Pending() (Pending, bool) {
	if c.pending == nil {
		return Pending{}, false
	}
	return c.pending.Pending, true
}

// Rotator returns the layout cycle the controller advances.
func (c *Controller) Rotator() *layout.Rotator {
	return c.rotator
}

// Next advances the rotation and applies the resulting layout.
func (c *Controller) Next(ctx context.Context) {
	c.apply(ctx, c.rotator.Next())
}

// Switch applies l without touching the rotation cursor. The zero Layout
// is ignored.
func (c *Controller) Switch(ctx context.Context, l layout.Layout) {
	if l.IsZero() {
		return
	}
	c.apply(ctx, l)
}

// Retry re-applies the failed layout. No-op unless id is the pending
// failure.
func (c *Controller) Retry(ctx context.Context, id uint64) {
	if !c.isPending(id) {
		return
	}

	l := c.pending.Layout
	c.clearPending(true)
	c.setState(RetryRequested)
	c.apply(ctx, l)
}

// Skip abandons the failed layout immediately.
func (c *Controller) Skip(id uint64) {
	if !c.isPending(id) {
		return
	}

	c.log.Infow("layout skipped", "layout", c.pending.Layout.String())
	c.clearPending(true)
	c.setState(ManualSkipped)
}

// Dismissed reports that the user closed the surface; it counts as Skip.
func (c *Controller) Dismissed(id uint64) {
	if !c.isPending(id) {
		return
	}

	c.log.Infow("error popup closed", "layout", c.pending.Layout.String())
	c.clearPending(false)
	c.setState(ManualSkipped)
}

func (c *Controller) isPending(id uint64) bool {
	if c.pending == nil {
		return false
	}
	if c.pending.ID != id {
		c.log.Debugw("action for a replaced failure ignored", "id", id, "pending", c.pending.ID)
		return false
	}
	return true
}

func (c *Controller) apply(ctx context.Context, l layout.Layout) {
	c.setState(Applying)

	err := c.applier.Apply(ctx, l)
	if err == nil {
		if c.pending != nil {
			c.clearPending(true)
		}
		c.setState(Applied)
		c.log.Debugw("layout applied", "layout", l.String())
		for _, fn := range c.onApplied {
			fn(l)
		}
		return
	}

	failure := switcher.AsFailure(l, err)
	c.log.Warnw("layout switch failed",
		"layout", l.String(),
		"class", failure.Class,
		"message", failure.Message,
		"exit_code", failure.ExitCode,
	)

	// only one surface at a time, the newest failure wins
	if c.pending != nil {
		c.clearPending(true)
	}

	c.setState(Failed)
	c.lastID++
	p := &pending{Pending: Pending{
		ID:        c.lastID,
		Layout:    l,
		Failure:   failure,
		Remaining: CountdownSeconds,
	}}
	c.pending = p
	c.surface.Show(p.Pending)

	c.setState(CountdownRunning)
	c.schedule(p)
}

func (c *Controller) schedule(p *pending) {
	p.timer = c.sched.AfterFunc(TickInterval, func() {
		c.tick(p)
	})
}

func (c *Controller) tick(p *pending) {
	if c.pending != p {
		return
	}

	p.Remaining--
	if p.Remaining > 0 {
		c.surface.SetCountdown(p.Remaining)
		c.schedule(p)
		return
	}

	c.log.Infow("layout skipped automatically", "layout", p.Layout.String())
	c.clearPending(true)
	c.setState(AutoSkipped)
	if c.onAutoSkip != nil {
		c.onAutoSkip(p.Pending)
	}
}

func (c *Controller) clearPending(dismiss bool) {
	p := c.pending
	c.pending = nil

	if p.timer != nil {
		p.timer.Stop()
	}
	if dismiss {
		c.surface.Dismiss()
	}
}

func (c *Controller) setState(s State) {
	from := c.state
	c.state = s
	if c.onTransition != nil {
		c.onTransition(from, s)
	}
}
