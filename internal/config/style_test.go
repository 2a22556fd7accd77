package config

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#444444", color.NRGBA{0x44, 0x44, 0x44, 0xff}, false},
		{"#000000", color.NRGBA{0, 0, 0, 0xff}, false},
		{"#ff8000", color.NRGBA{0xff, 0x80, 0x00, 0xff}, false},
		{"#abc", color.NRGBA{0xaa, 0xbb, 0xcc, 0xff}, false},
		{"444444", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(color.NRGBA{0x12, 0xab, 0x00, 0xff}); got != "#12ab00" {
		t.Errorf("FormatColor = %q", got)
	}
}

func TestParseFont(t *testing.T) {
	tests := []struct {
		in      string
		want    Font
		wantErr bool
	}{
		{"Arial 14 bold", Font{Family: "Arial", Size: 14, Bold: true}, false},
		{"DejaVu Sans 10", Font{Family: "DejaVu Sans", Size: 10}, false},
		{"{DejaVu Sans Mono} 12 bold italic", Font{Family: "DejaVu Sans Mono", Size: 12, Bold: true, Italic: true}, false},
		{"Arial -16", Font{Family: "Arial", Size: 16}, false},
		{"Arial 12 underline", Font{Family: "Arial", Size: 12}, false},
		{"Arial", Font{}, true},
		{"14 bold", Font{}, true},
		{"{Arial 12", Font{}, true},
		{"Arial 0", Font{}, true},
	}

	for _, tt := range tests {
		got, err := ParseFont(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFont(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFont(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFontString(t *testing.T) {
	for _, in := range []string{"Arial 14 bold", "{DejaVu Sans} 12 bold italic"} {
		f, err := ParseFont(in)
		if err != nil {
			t.Fatalf("ParseFont(%q): %v", in, err)
		}
		if f.String() != in {
			t.Errorf("String() = %q, want %q", f.String(), in)
		}
	}
}
