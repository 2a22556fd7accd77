// Package switcher applies keyboard layouts through the X keyboard tools.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"klayout/internal/layout"
)

// DefaultTimeout bounds a single setxkbmap invocation.
const DefaultTimeout = 5 * time.Second

// Applier switches the OS keyboard layout.
type Applier interface {
	Apply(ctx context.Context, l layout.Layout) error
}

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ApplyFailure describes a failed layout switch. Class is the type name of
// the underlying error and Message what the command (or the OS) reported.
type ApplyFailure struct {
	Layout   layout.Layout
	Class    string
	Message  string
	ExitCode int
	Err      error
}

func (f *ApplyFailure) Error() string {
	return fmt.Sprintf("apply %s: %s (%s)", f.Layout, f.Class, f.Message)
}

func (f *ApplyFailure) Unwrap() error {
	return f.Err
}

// Details is the one-line description shown to the user.
func (f *ApplyFailure) Details() string {
	return fmt.Sprintf("%s (%s)", f.Class, f.Message)
}

// Setxkbmap applies layouts by running `setxkbmap <lang> [variant]`.
type Setxkbmap struct {
	Path    string
	Timeout time.Duration
	Runner  Runner
}

// Apply runs the command synchronously. It returns nil on exit status 0
// and an *ApplyFailure otherwise.
func (s Setxkbmap) Apply(ctx context.Context, l layout.Layout) error {
	path := s.Path
	if path == "" {
		path = "setxkbmap"
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	run := s.Runner
	if run == nil {
		run = runCommand
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := run(ctx, path, l.Args()...)
	if err == nil {
		return nil
	}

	return newFailure(ctx, l, strings.TrimSpace(string(out)), err)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func newFailure(ctx context.Context, l layout.Layout, output string, err error) *ApplyFailure {
	f := &ApplyFailure{
		Layout:   l,
		Class:    className(err),
		Message:  output,
		ExitCode: -1,
		Err:      err,
	}

	// a killed process reports "signal: killed", the deadline is the real cause
	if ctxErr := ctx.Err(); ctxErr != nil {
		f.Class = className(ctxErr)
		f.Err = fmt.Errorf("%w: %w", ctxErr, err)
		if f.Message == "" {
			f.Message = ctxErr.Error()
		}
		return f
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		f.ExitCode = exitErr.ExitCode()
	}

	if f.Message == "" {
		f.Message = err.Error()
	}

	return f
}

// className returns the bare type name of err ("ExitError", "Error").
func className(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "DeadlineExceeded"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	}

	name := fmt.Sprintf("%T", err)
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// AsFailure returns err as an *ApplyFailure for l, wrapping errors that
// did not come from Setxkbmap.
func AsFailure(l layout.Layout, err error) *ApplyFailure {
	var f *ApplyFailure
	if errors.As(err, &f) {
		return f
	}

	return &ApplyFailure{
		Layout:   l,
		Class:    className(err),
		Message:  err.Error(),
		ExitCode: -1,
		Err:      err,
	}
}
