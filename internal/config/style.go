package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing #", s)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("color %q: want 3 or 6 hex digits", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// Font is a parsed font description such as "Arial 14 bold" or
// "{DejaVu Sans} 12 bold italic".
type Font struct {
	Family string
	Size   int
	Bold   bool
	Italic bool
}

// String renders the description back in the same format.
func (f Font) String() string {
	family := f.Family
	if strings.ContainsAny(family, " \t") {
		family = "{" + family + "}"
	}

	parts := []string{family, strconv.Itoa(f.Size)}
	if f.Bold {
		parts = append(parts, "bold")
	}
	if f.Italic {
		parts = append(parts, "italic")
	}
	return strings.Join(parts, " ")
}

// ParseFont parses a font description: family, size in points, then
// style words. Unknown style words are ignored.
func ParseFont(s string) (Font, error) {
	var f Font

	rest := strings.TrimSpace(s)
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return Font{}, fmt.Errorf("font %q: unterminated family", s)
		}
		f.Family = rest[1:end]
		rest = rest[end+1:]
	}

	fields := strings.Fields(rest)
	sizeAt := -1
	for i, field := range fields {
		if n, err := strconv.Atoi(field); err == nil {
			f.Size = n
			sizeAt = i
			break
		}
	}

	if sizeAt < 0 {
		return Font{}, fmt.Errorf("font %q: missing size", s)
	}
	if f.Family == "" {
		f.Family = strings.Join(fields[:sizeAt], " ")
	} else if sizeAt != 0 {
		return Font{}, fmt.Errorf("font %q: unexpected text after family", s)
	}
	if f.Family == "" {
		return Font{}, fmt.Errorf("font %q: missing family", s)
	}

	// negative sizes are pixel sizes
	if f.Size < 0 {
		f.Size = -f.Size
	}
	if f.Size == 0 {
		return Font{}, fmt.Errorf("font %q: zero size", s)
	}

	for _, word := range fields[sizeAt+1:] {
		switch strings.ToLower(word) {
		case "bold":
			f.Bold = true
		case "italic":
			f.Italic = true
		}
	}

	return f, nil
}
