package layout

import (
	"errors"
	"fmt"
)

// ErrEmptyList is wrapped by ConfigurationError when no layouts are configured.
var ErrEmptyList = errors.New("layout list is empty")

// ConfigurationError reports an unusable layout list. It is fatal at startup.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParseList parses configured identifiers into layouts.
func ParseList(ids []string) ([]Layout, error) {
	if len(ids) == 0 {
		return nil, &ConfigurationError{Err: ErrEmptyList}
	}

	out := make([]Layout, 0, len(ids))
	for i, id := range ids {
		l, err := Parse(id)
		if err != nil {
			return nil, &ConfigurationError{Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		out = append(out, l)
	}
	return out, nil
}

// Rotator yields layouts in cyclic order. It is not safe for concurrent
// use; the owner calls it from a single goroutine.
type Rotator struct {
	layouts []Layout
	next    int
	current Layout
}

// NewRotator creates a rotator positioned before the first layout.
func NewRotator(layouts []Layout) (*Rotator, error) {
	if len(layouts) == 0 {
		return nil, &ConfigurationError{Err: ErrEmptyList}
	}

	return &Rotator{
		layouts: append([]Layout(nil), layouts...),
	}, nil
}

// Next advances the cursor and returns the layout under it.
func (r *Rotator) Next() Layout {
	r.current = r.layouts[r.next]
	r.next = (r.next + 1) % len(r.layouts)
	return r.current
}

// Current returns the layout last returned by Next, or the zero Layout
// before the first call.
func (r *Rotator) Current() Layout {
	return r.current
}

// Len returns the number of layouts in the cycle.
func (r *Rotator) Len() int {
	return len(r.layouts)
}
