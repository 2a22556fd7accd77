// Package xkb reads the XKB rules registry (evdev.xml) that lists every
// keyboard layout and variant known to the X server.
package xkb

// DefaultPath is where X.Org installs the evdev rules registry.
const DefaultPath = "/usr/share/X11/xkb/rules/evdev.xml"

// Registry is the part of an xkbConfigRegistry document that describes
// layouts. Models and options are not decoded.
type Registry struct {
	Layouts []Layout `xml:"layoutList>layout"`
}

// Layout is one layout and its variants.
type Layout struct {
	Item     Item   `xml:"configItem"`
	Variants []Item `xml:"variantList>variant>configItem"`
}

// Item is a code with its human readable description.
type Item struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
}
