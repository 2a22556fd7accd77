package toolbar

import (
	"fmt"
	"image/color"

	"gioui.org/font"

	"klayout/internal/config"
)

// Style is the look of the toolbar label.
type Style struct {
	Background color.NRGBA
	Foreground color.NRGBA
	Font       config.Font
}

// NewStyle parses the colors and font from s.
func NewStyle(s config.Settings) (Style, error) {
	bg, err := config.ParseColor(s.Background)
	if err != nil {
		return Style{}, fmt.Errorf("background: %w", err)
	}
	fg, err := config.ParseColor(s.Foreground)
	if err != nil {
		return Style{}, fmt.Errorf("foreground: %w", err)
	}
	f, err := config.ParseFont(s.Font)
	if err != nil {
		return Style{}, err
	}
	return Style{Background: bg, Foreground: fg, Font: f}, nil
}

// DefaultStyle is the style of the default settings.
func DefaultStyle() Style {
	st, _ := NewStyle(config.Default())
	return st
}

// gioFont maps the description onto a gio font. Families the shaper does
// not know fall back to the default face.
func (s Style) gioFont() font.Font {
	f := font.Font{Typeface: font.Typeface(s.Font.Family)}
	if s.Font.Bold {
		f.Weight = font.Bold
	}
	if s.Font.Italic {
		f.Style = font.Italic
	}
	return f
}
