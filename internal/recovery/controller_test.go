package recovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"klayout/internal/layout"
	"klayout/internal/loop"
	"klayout/internal/switcher"
)

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler is a manual clock standing in for the loop.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) loop.Timer {
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		var next *fakeTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.fn()
	}
	s.now = target
}

func (s *fakeScheduler) Active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeSurface struct {
	shown     []Pending
	countdown []int
	dismissed int
}

func (s *fakeSurface) Show(p Pending)             { s.shown = append(s.shown, p) }
func (s *fakeSurface) SetCountdown(remaining int) { s.countdown = append(s.countdown, remaining) }
func (s *fakeSurface) Dismiss()                   { s.dismissed++ }

type fakeApplier struct {
	calls []layout.Layout
	fail  map[string]error
}

func (a *fakeApplier) Apply(ctx context.Context, l layout.Layout) error {
	a.calls = append(a.calls, l)
	return a.fail[l.String()]
}

type fixture struct {
	ctrl        *Controller
	sched       *fakeScheduler
	surface     *fakeSurface
	applier     *fakeApplier
	transitions []State
}

func newFixture(t *testing.T, ids ...string) *fixture {
	t.Helper()

	layouts, err := layout.ParseList(ids)
	if err != nil {
		t.Fatal(err)
	}
	rot, err := layout.NewRotator(layouts)
	if err != nil {
		t.Fatal(err)
	}

	f := &fixture{
		sched:   &fakeScheduler{},
		surface: &fakeSurface{},
		applier: &fakeApplier{fail: make(map[string]error)},
	}
	f.ctrl = New(rot, f.applier, f.surface, f.sched, nil)
	f.ctrl.OnTransition(func(from, to State) {
		f.transitions = append(f.transitions, to)
	})
	return f
}

func badLayout(id string) error {
	return &switcher.ApplyFailure{
		Layout:   layout.MustParse(id),
		Class:    "ExitError",
		Message:  "bad layout",
		ExitCode: 1,
	}
}

func TestNextApplies(t *testing.T) {
	f := newFixture(t, "us", "ru")

	var applied []string
	f.ctrl.OnApplied(func(l layout.Layout) { applied = append(applied, l.Language()) })

	f.ctrl.Next(context.Background())
	f.ctrl.Next(context.Background())

	if f.ctrl.State() != Applied {
		t.Errorf("State() = %v, want applied", f.ctrl.State())
	}
	if len(applied) != 2 || applied[0] != "us" || applied[1] != "ru" {
		t.Errorf("applied = %v, want [us ru]", applied)
	}
	if len(f.surface.shown) != 0 {
		t.Error("surface shown on success")
	}
}

func TestFailureStartsCountdown(t *testing.T) {
	f := newFixture(t, "us", "xx", "ru")
	f.applier.fail["xx"] = badLayout("xx")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.transitions = nil
	f.ctrl.Next(ctx)

	want := []State{Applying, Failed, CountdownRunning}
	if len(f.transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", f.transitions, want)
	}
	for i := range want {
		if f.transitions[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", f.transitions, want)
		}
	}

	p, ok := f.ctrl.Pending()
	if !ok {
		t.Fatal("no pending context after failure")
	}
	if p.Remaining != 10 {
		t.Errorf("Remaining = %d, want 10", p.Remaining)
	}
	if p.Layout.Lang != "xx" {
		t.Errorf("pending layout = %v, want xx", p.Layout)
	}
	if len(f.surface.shown) != 1 {
		t.Fatalf("surface shown %d times, want 1", len(f.surface.shown))
	}
	if f.surface.shown[0].Failure.Message != "bad layout" {
		t.Errorf("surface failure = %+v", f.surface.shown[0].Failure)
	}
}

func TestAutoSkipAfterTenTicks(t *testing.T) {
	f := newFixture(t, "us", "xx", "ru")
	f.applier.fail["xx"] = badLayout("xx")

	var skipped []Pending
	f.ctrl.OnAutoSkip(func(p Pending) { skipped = append(skipped, p) })

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.ctrl.Next(ctx)

	f.sched.Advance(9 * time.Second)
	if f.ctrl.State() != CountdownRunning {
		t.Fatalf("after 9 ticks State() = %v, want countdown", f.ctrl.State())
	}
	p, _ := f.ctrl.Pending()
	if p.Remaining != 1 {
		t.Errorf("after 9 ticks Remaining = %d, want 1", p.Remaining)
	}

	f.sched.Advance(time.Second)
	if f.ctrl.State() != AutoSkipped {
		t.Fatalf("after 10 ticks State() = %v, want auto-skipped", f.ctrl.State())
	}
	if _, ok := f.ctrl.Pending(); ok {
		t.Error("pending context survived auto-skip")
	}
	if f.surface.dismissed != 1 {
		t.Errorf("surface dismissed %d times, want 1", f.surface.dismissed)
	}
	if len(skipped) != 1 || skipped[0].Layout.Lang != "xx" {
		t.Errorf("auto-skip callback = %v", skipped)
	}

	wantCountdown := []int{9, 8, 7, 6, 5, 4, 3, 2, 1}
	if len(f.surface.countdown) != len(wantCountdown) {
		t.Fatalf("countdown updates = %v, want %v", f.surface.countdown, wantCountdown)
	}
	for i := range wantCountdown {
		if f.surface.countdown[i] != wantCountdown[i] {
			t.Fatalf("countdown updates = %v, want %v", f.surface.countdown, wantCountdown)
		}
	}

	// cursor was not moved backward: the next switch goes past the failed layout
	if cur := f.ctrl.Rotator().Current(); cur.Lang != "xx" {
		t.Errorf("Current() = %v, want xx", cur)
	}
	f.ctrl.Next(ctx)
	if got := f.applier.calls[len(f.applier.calls)-1]; got.Lang != "ru" {
		t.Errorf("next switch applied %v, want ru", got)
	}
	if f.sched.Active() != 0 {
		t.Errorf("%d timers still active", f.sched.Active())
	}
}

func TestRetryReappliesSameLayout(t *testing.T) {
	f := newFixture(t, "xx", "us", "ru")
	f.applier.fail["xx"] = badLayout("xx")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.sched.Advance(2 * time.Second)

	delete(f.applier.fail, "xx")
	p, _ := f.ctrl.Pending()
	f.ctrl.Retry(ctx, p.ID)

	if len(f.applier.calls) != 2 {
		t.Fatalf("applier calls = %v, want 2", f.applier.calls)
	}
	if got := f.applier.calls[1]; got.Lang != "xx" {
		t.Errorf("retry applied %v, want xx", got)
	}
	if f.ctrl.State() != Applied {
		t.Errorf("State() = %v, want applied", f.ctrl.State())
	}
	if cur := f.ctrl.Rotator().Current(); cur.Lang != "xx" {
		t.Errorf("retry moved the cursor: Current() = %v", cur)
	}
	if f.sched.Active() != 0 {
		t.Errorf("countdown timer still active after retry")
	}
	if f.surface.dismissed != 1 {
		t.Errorf("surface dismissed %d times, want 1", f.surface.dismissed)
	}
}

func TestRetryFailingAgainRestartsCountdown(t *testing.T) {
	f := newFixture(t, "xx", "us")
	f.applier.fail["xx"] = badLayout("xx")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.sched.Advance(4 * time.Second)

	f.transitions = nil
	first, _ := f.ctrl.Pending()
	f.ctrl.Retry(ctx, first.ID)

	want := []State{RetryRequested, Applying, Failed, CountdownRunning}
	if len(f.transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", f.transitions, want)
	}
	for i := range want {
		if f.transitions[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", f.transitions, want)
		}
	}
	p, _ := f.ctrl.Pending()
	if p.Remaining != CountdownSeconds {
		t.Errorf("Remaining = %d, want %d", p.Remaining, CountdownSeconds)
	}
	if p.ID == first.ID {
		t.Errorf("failed retry kept id %d", p.ID)
	}
	if f.sched.Active() != 1 {
		t.Errorf("active timers = %d, want 1", f.sched.Active())
	}
}

func TestSkipStopsTicks(t *testing.T) {
	f := newFixture(t, "xx", "us")
	f.applier.fail["xx"] = &switcher.ApplyFailure{
		Layout:   layout.MustParse("xx"),
		Class:    "ExitError",
		Message:  "bad layout",
		ExitCode: 1,
	}

	ctx := context.Background()
	f.ctrl.Next(ctx)
	p, _ := f.ctrl.Pending()
	if p.Remaining != 10 {
		t.Fatalf("countdown starts at %d, want 10", p.Remaining)
	}

	f.sched.Advance(3 * time.Second)
	f.ctrl.Skip(p.ID)

	if f.ctrl.State() != ManualSkipped {
		t.Fatalf("State() = %v, want skipped", f.ctrl.State())
	}
	updates := len(f.surface.countdown)

	f.sched.Advance(20 * time.Second)
	if len(f.surface.countdown) != updates {
		t.Errorf("ticks continued after skip: %v", f.surface.countdown)
	}
	if f.ctrl.State() != ManualSkipped {
		t.Errorf("State() changed after skip: %v", f.ctrl.State())
	}
	if f.surface.dismissed != 1 {
		t.Errorf("surface dismissed %d times, want 1", f.surface.dismissed)
	}
}

func TestDismissedCountsAsSkip(t *testing.T) {
	f := newFixture(t, "xx")
	f.applier.fail["xx"] = badLayout("xx")

	f.ctrl.Next(context.Background())
	p, _ := f.ctrl.Pending()
	f.ctrl.Dismissed(p.ID)

	if f.ctrl.State() != ManualSkipped {
		t.Errorf("State() = %v, want skipped", f.ctrl.State())
	}
	if f.surface.dismissed != 0 {
		t.Error("surface closed by the user must not be dismissed again")
	}
	if f.sched.Active() != 0 {
		t.Error("timer still active after dismissal")
	}
}

func TestNewFailurePreemptsPending(t *testing.T) {
	f := newFixture(t, "xx", "yy")
	f.applier.fail["xx"] = badLayout("xx")
	f.applier.fail["yy"] = badLayout("yy")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.sched.Advance(5 * time.Second)
	f.ctrl.Next(ctx)

	p, ok := f.ctrl.Pending()
	if !ok || p.Layout.Lang != "yy" {
		t.Fatalf("pending = %+v, want yy", p)
	}
	if p.Remaining != CountdownSeconds {
		t.Errorf("Remaining = %d, want fresh countdown", p.Remaining)
	}
	if f.surface.dismissed != 1 {
		t.Errorf("old surface dismissed %d times, want 1", f.surface.dismissed)
	}
	if f.sched.Active() != 1 {
		t.Errorf("active timers = %d, want 1", f.sched.Active())
	}

	f.sched.Advance(10 * time.Second)
	if f.ctrl.State() != AutoSkipped {
		t.Errorf("State() = %v, want auto-skipped", f.ctrl.State())
	}
}

func TestSuccessClearsPending(t *testing.T) {
	f := newFixture(t, "xx", "us")
	f.applier.fail["xx"] = badLayout("xx")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	f.ctrl.Next(ctx)

	if _, ok := f.ctrl.Pending(); ok {
		t.Error("pending context survived a successful switch")
	}
	if f.sched.Active() != 0 {
		t.Error("countdown timer survived a successful switch")
	}
}

func TestRetrySkipWithoutPendingAreNoops(t *testing.T) {
	f := newFixture(t, "us")

	f.ctrl.Retry(context.Background(), 0)
	f.ctrl.Skip(0)
	f.ctrl.Dismissed(0)

	if f.ctrl.State() != Idle {
		t.Errorf("State() = %v, want idle", f.ctrl.State())
	}
	if len(f.applier.calls) != 0 {
		t.Errorf("applier called: %v", f.applier.calls)
	}
}

func TestSwitchDoesNotRotate(t *testing.T) {
	f := newFixture(t, "us", "ru")

	f.ctrl.Switch(context.Background(), layout.MustParse("de"))
	f.ctrl.Next(context.Background())

	if got := f.applier.calls[1]; got.Lang != "us" {
		t.Errorf("Next after Switch applied %v, want us", got)
	}
}

func TestSwitchIgnoresZeroLayout(t *testing.T) {
	f := newFixture(t, "us")

	f.ctrl.Switch(context.Background(), layout.Layout{})

	if len(f.applier.calls) != 0 {
		t.Errorf("applier called with %v", f.applier.calls)
	}
	if f.ctrl.State() != Idle {
		t.Errorf("State() = %v, want idle", f.ctrl.State())
	}
}

func TestPlainErrorBecomesFailure(t *testing.T) {
	f := newFixture(t, "us")
	f.applier.fail["us"] = errors.New("boom")

	f.ctrl.Next(context.Background())

	p, ok := f.ctrl.Pending()
	if !ok {
		t.Fatal("no pending context")
	}
	if p.Failure.Message != "boom" {
		t.Errorf("Message = %q, want boom", p.Failure.Message)
	}
	if p.Failure.Class == "" {
		t.Error("Class is empty")
	}
}

func TestStateString(t *testing.T) {
	if AutoSkipped.String() != "auto-skipped" {
		t.Errorf("AutoSkipped.String() = %q", AutoSkipped.String())
	}
	if State(99).String() != "unknown" {
		t.Errorf("State(99).String() = %q", State(99).String())
	}
}

func TestActionsForReplacedFailureIgnored(t *testing.T) {
	f := newFixture(t, "xx", "yy")
	f.applier.fail["xx"] = badLayout("xx")
	f.applier.fail["yy"] = badLayout("yy")

	ctx := context.Background()
	f.ctrl.Next(ctx)
	old, _ := f.ctrl.Pending()

	// a click on the xx popup queued while yy was being applied
	f.ctrl.Next(ctx)
	calls := len(f.applier.calls)

	f.ctrl.Retry(ctx, old.ID)
	f.ctrl.Skip(old.ID)
	f.ctrl.Dismissed(old.ID)

	if len(f.applier.calls) != calls {
		t.Errorf("stale retry applied %v", f.applier.calls[calls:])
	}
	p, ok := f.ctrl.Pending()
	if !ok || p.Layout.Lang != "yy" {
		t.Fatalf("pending = %+v, want yy", p)
	}
	if f.ctrl.State() != CountdownRunning {
		t.Errorf("State() = %v, want countdown", f.ctrl.State())
	}

	f.ctrl.Skip(p.ID)
	if f.ctrl.State() != ManualSkipped {
		t.Errorf("State() = %v, want skipped", f.ctrl.State())
	}
}
