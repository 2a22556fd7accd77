// Package autostart manages the XDG autostart entry that starts the
// widget with the desktop session.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const fileName = "klayout.desktop"

// Entry is the autostart file inside one autostart directory.
type Entry struct {
	dir string
}

// New returns the entry in $XDG_CONFIG_HOME/autostart.
func New() *Entry {
	return &Entry{dir: filepath.Join(xdg.ConfigHome, "autostart")}
}

// NewIn returns the entry in dir.
func NewIn(dir string) *Entry {
	return &Entry{dir: dir}
}

// Path is the location of the .desktop file.
func (e *Entry) Path() string {
	return filepath.Join(e.dir, fileName)
}

// Enable writes the .desktop file launching exe.
func (e *Entry) Enable(exe string) error {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(e.Path(), []byte(DesktopFile(exe)), 0644); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

// Disable removes the .desktop file. A missing file is not an error.
func (e *Entry) Disable() error {
	err := os.Remove(e.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}

// Enabled reports whether the .desktop file exists.
func (e *Entry) Enabled() bool {
	_, err := os.Stat(e.Path())
	return err == nil
}

// Set enables or disables the entry.
func (e *Entry) Set(enabled bool, exe string) error {
	if enabled {
		return e.Enable(exe)
	}
	return e.Disable()
}

// DesktopFile renders the autostart entry for exe.
func DesktopFile(exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=KLayout\n")
	b.WriteString("Comment=Keyboard layout switcher\n")
	fmt.Fprintf(&b, "Exec=%s\n", quoteExec(exe))
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}

// quoteExec quotes a path per the desktop entry Exec rules.
func quoteExec(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\$`") {
		return path
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(path) + `"`
}
