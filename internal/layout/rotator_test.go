package layout

import (
	"errors"
	"testing"
)

func TestNewRotatorEmpty(t *testing.T) {
	_, err := NewRotator(nil)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("NewRotator(nil) error = %v, want ConfigurationError", err)
	}
	if !errors.Is(err, ErrEmptyList) {
		t.Errorf("error should wrap ErrEmptyList, got %v", err)
	}
}

func TestRotatorCyclic(t *testing.T) {
	lists := [][]string{
		{"us"},
		{"us", "ru"},
		{"us", "ru", "ua", "cz qwerty"},
	}

	for _, ids := range lists {
		layouts, err := ParseList(ids)
		if err != nil {
			t.Fatalf("ParseList(%v): %v", ids, err)
		}
		r, err := NewRotator(layouts)
		if err != nil {
			t.Fatalf("NewRotator: %v", err)
		}

		seen := make(map[Layout]int)
		for range ids {
			seen[r.Next()]++
		}
		for _, l := range layouts {
			if seen[l] != 1 {
				t.Errorf("list %v: %v seen %d times in one cycle, want 1", ids, l, seen[l])
			}
		}

		if got := r.Next(); got != layouts[0] {
			t.Errorf("list %v: call n+1 = %v, want %v", ids, got, layouts[0])
		}
	}
}

func TestRotatorScenario(t *testing.T) {
	layouts, err := ParseList([]string{"us", "ru", "ua"})
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRotator(layouts)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"us", "ru", "ua", "us"}
	for i, w := range want {
		if got := r.Next().String(); got != w {
			t.Errorf("call %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestRotatorCurrent(t *testing.T) {
	r, err := NewRotator([]Layout{MustParse("us"), MustParse("ru")})
	if err != nil {
		t.Fatal(err)
	}

	if !r.Current().IsZero() {
		t.Errorf("Current() before Next = %v, want zero", r.Current())
	}

	first := r.Next()
	if r.Current() != first {
		t.Errorf("Current() = %v, want %v", r.Current(), first)
	}
	if r.Current() != first {
		t.Error("Current() must not advance the cursor")
	}
	if got := r.Next(); got.Lang != "ru" {
		t.Errorf("Next() after Current() = %v, want ru", got)
	}
}

func TestRotatorCopiesInput(t *testing.T) {
	in := []Layout{MustParse("us"), MustParse("ru")}
	r, err := NewRotator(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0] = MustParse("de")

	if got := r.Next(); got.Lang != "us" {
		t.Errorf("rotator should not alias caller slice, got %v", got)
	}
}

func TestParseListMalformed(t *testing.T) {
	_, err := ParseList([]string{"us", "a b c"})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want ConfigurationError", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error should wrap ParseError, got %v", err)
	}
}
