package popup

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"klayout/internal/i18n"
	"klayout/internal/layout"
	"klayout/internal/recovery"
	"klayout/internal/switcher"
)

func TestNewContent(t *testing.T) {
	i18n.SetLanguage(i18n.EN)

	l := layout.MustParse("xx")
	p := recovery.Pending{
		Layout: l,
		Failure: &switcher.ApplyFailure{
			Layout:   l,
			Class:    "ExitError",
			Message:  "bad layout",
			ExitCode: 1,
			Err:      errors.New("exit status 1"),
		},
		Remaining: recovery.CountdownSeconds,
	}

	c := NewContent(p, p.Remaining)
	if c.Header != `While switching keyboard layout to "xx", an error occurred:` {
		t.Errorf("Header = %q", c.Header)
	}
	if c.Details != "Details: ExitError (bad layout)" {
		t.Errorf("Details = %q", c.Details)
	}
	if c.Retry != "Retry?" {
		t.Errorf("Retry = %q", c.Retry)
	}
	if c.Skip != "Skip? (automatically in 10 seconds)" {
		t.Errorf("Skip = %q", c.Skip)
	}

	if got := NewContent(p, 3).Skip; got != "Skip? (automatically in 3 seconds)" {
		t.Errorf("Skip at 3 = %q", got)
	}
}

func TestNewContentWithVariant(t *testing.T) {
	i18n.SetLanguage(i18n.EN)

	c := NewContent(recovery.Pending{Layout: layout.MustParse("cz qwerty")}, 1)
	if c.Header != `While switching keyboard layout to "cz qwerty", an error occurred:` {
		t.Errorf("Header = %q", c.Header)
	}
	if c.Details != "Details: " {
		t.Errorf("Details without failure = %q", c.Details)
	}
}

func TestDismissWithoutShow(t *testing.T) {
	p := New(DefaultConfig(), nil, nil, nil)

	p.Dismiss()
	if p.visible() {
		t.Error("popup visible after Dismiss")
	}
}

func TestActionsCarryPendingID(t *testing.T) {
	p := New(DefaultConfig(), nil, nil, nil)
	p.pending = recovery.Pending{ID: 7, Layout: layout.MustParse("xx")}

	got := make(chan uint64, 2)
	p.OnRetry(func(id uint64) { got <- id })
	p.OnSkip(func(id uint64) { got <- id })

	p.fire(p.retryCallback())
	p.fire(p.skipCallback())

	for i := 0; i < 2; i++ {
		select {
		case id := <-got:
			if id != 7 {
				t.Errorf("callback got id %d, want 7", id)
			}
		case <-time.After(time.Second):
			t.Fatal("callback not called")
		}
	}
}

func TestDarken(t *testing.T) {
	got := darken(color.NRGBA{R: 100, G: 200, B: 0, A: 255}, 0.5)
	want := color.NRGBA{R: 50, G: 100, B: 0, A: 255}
	if got != want {
		t.Errorf("darken = %v, want %v", got, want)
	}
}
