// Package layout describes keyboard layouts and the cyclic order they are switched in.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoVariant is matched by a ParseError raised when a variant is
// requested from a layout that has none.
var ErrNoVariant = errors.New("this keyboard layout doesn't have a variant specified")

// ParseError reports a malformed layout identifier.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("layout %q: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Layout is a keyboard layout: a language code plus an optional variant,
// for example "cz" + "qwerty".
type Layout struct {
	Lang    string
	Variant string
}

// Parse builds a Layout from its identifier form ("us", "cz qwerty").
func Parse(id string) (Layout, error) {
	fields := strings.Fields(id)
	switch len(fields) {
	case 1:
		return Layout{Lang: fields[0]}, nil
	case 2:
		return Layout{Lang: fields[0], Variant: fields[1]}, nil
	case 0:
		return Layout{}, &ParseError{ID: id, Err: errors.New("empty identifier")}
	default:
		return Layout{}, &ParseError{ID: id, Err: fmt.Errorf("expected language and optional variant, got %d fields", len(fields))}
	}
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(id string) Layout {
	l, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return l
}

// String returns the identifier form, suitable for Parse.
func (l Layout) String() string {
	if l.Variant == "" {
		return l.Lang
	}
	return l.Lang + " " + l.Variant
}

// Language returns the language code shown on the toolbar.
func (l Layout) Language() string {
	return l.Lang
}

// Type returns the variant, or a ParseError wrapping ErrNoVariant.
func (l Layout) Type() (string, error) {
	if l.Variant == "" {
		return "", &ParseError{ID: l.String(), Err: ErrNoVariant}
	}
	return l.Variant, nil
}

// IsZero reports whether l is the zero Layout.
func (l Layout) IsZero() bool {
	return l.Lang == "" && l.Variant == ""
}

// Args returns the positional arguments for setxkbmap.
func (l Layout) Args() []string {
	if l.Variant == "" {
		return []string{l.Lang}
	}
	return []string{l.Lang, l.Variant}
}

// LangOf returns the language code of a raw identifier: its first token.
func LangOf(id string) string {
	fields := strings.Fields(id)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// TypeOf returns the variant of a raw identifier.
func TypeOf(id string) (string, error) {
	l, err := Parse(id)
	if err != nil {
		return "", err
	}
	return l.Type()
}
