// Package config holds the persisted widget settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/adrg/xdg"
)

const (
	DefaultBackground = "#444444"
	DefaultForeground = "#000000"
	DefaultFont       = "Arial 14 bold"

	defaultApplyTimeout = 5 * time.Second
)

// Settings is everything the settings flow can edit.
type Settings struct {
	Layouts       []string     `json:"layouts"`
	RunOnStartup  bool         `json:"run_on_startup"`
	Background    string       `json:"background"`
	Foreground    string       `json:"foreground"`
	Font          string       `json:"font"`
	Hotkey        HotkeyConfig `json:"hotkey"`
	Notifications bool         `json:"notifications"`
	UILanguage    string       `json:"ui_language,omitempty"`

	SetxkbmapPath  string `json:"setxkbmap_path,omitempty"`
	ApplyTimeoutMS int    `json:"apply_timeout_ms,omitempty"`
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.Layouts = slices.Clone(s.Layouts)
	s.Hotkey.Modifiers = slices.Clone(s.Hotkey.Modifiers)
	return s
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		Layouts:    []string{"us", "ru", "ua", "cz qwerty"},
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		Font:       DefaultFont,
		Hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModAlt, ModShift},
			Key:       KeySpace,
		},
		Notifications: true,
		UILanguage:    "en",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/klayout/config.json, creating the
// directory if needed.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("klayout", "config.json"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

// Config guards the current settings and writes them back to disk.
type Config struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// Load reads the settings at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := &Config{
		settings: Default(),
		path:     path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// unset fields keep their defaults
	if err := json.Unmarshal(data, &c.settings); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.fillDefaults()

	return c, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.settings.Background == "" {
		c.settings.Background = def.Background
	}
	if c.settings.Foreground == "" {
		c.settings.Foreground = def.Foreground
	}
	if c.settings.Font == "" {
		c.settings.Font = def.Font
	}
	if c.settings.Hotkey.Key == "" {
		c.settings.Hotkey = def.Hotkey
	}
	if c.settings.UILanguage == "" {
		c.settings.UILanguage = def.UILanguage
	}
}

// Path is the file the settings are saved to.
func (c *Config) Path() string {
	return c.path
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Clone()
}

// Update replaces all settings and saves them.
func (c *Config) Update(s Settings) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.settings
	c.settings = s.Clone()
	if err := c.save(); err != nil {
		c.settings = prev
		return err
	}
	return nil
}

// save writes to a temporary file and renames it over the old one.
// Callers hold mu.
func (c *Config) save() error {
	data, err := json.MarshalIndent(c.settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Layouts returns the configured layout identifiers.
func (c *Config) Layouts() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.settings.Layouts)
}

// Hotkey returns the layout switching shortcut.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Clone().Hotkey
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.Notifications
}

// ToggleNotifications flips the notifications flag, saves, and returns
// the new value.
func (c *Config) ToggleNotifications() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.Notifications = !c.settings.Notifications
	if err := c.save(); err != nil {
		c.settings.Notifications = !c.settings.Notifications
		return c.settings.Notifications, err
	}
	return c.settings.Notifications, nil
}

func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.UILanguage
}

// SetxkbmapPath returns the layout command, "setxkbmap" when unset.
func (c *Config) SetxkbmapPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.settings.SetxkbmapPath == "" {
		return "setxkbmap"
	}
	return c.settings.SetxkbmapPath
}

// ApplyTimeout bounds a single layout command run.
func (c *Config) ApplyTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.settings.ApplyTimeoutMS <= 0 {
		return defaultApplyTimeout
	}
	return time.Duration(c.settings.ApplyTimeoutMS) * time.Millisecond
}
