package xkb

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// ParseLayouts reads the registry at path.
func ParseLayouts(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a registry document from r.
func Decode(r io.Reader) (*Registry, error) {
	registry := &Registry{}
	if err := xml.NewDecoder(r).Decode(registry); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return registry, nil
}

func (r *Registry) layout(lang string) (Layout, bool) {
	for _, l := range r.Layouts {
		if l.Item.Name == lang {
			return l, true
		}
	}
	return Layout{}, false
}

// Has reports whether lang (and variant, when set) are known.
func (r *Registry) Has(lang, variant string) bool {
	l, ok := r.layout(lang)
	if !ok {
		return false
	}
	if variant == "" {
		return true
	}

	for _, v := range l.Variants {
		if v.Name == variant {
			return true
		}
	}
	return false
}

// PrettyName returns the human readable description, or "" if unknown.
func (r *Registry) PrettyName(lang, variant string) string {
	l, ok := r.layout(lang)
	if !ok {
		return ""
	}
	if variant == "" {
		return l.Item.Description
	}

	for _, v := range l.Variants {
		if v.Name == variant {
			return v.Description
		}
	}
	return ""
}

// FromPrettyName maps a description back to its layout and variant codes.
func (r *Registry) FromPrettyName(prettyName string) (string, string) {
	for _, l := range r.Layouts {
		if l.Item.Description == prettyName {
			return l.Item.Name, ""
		}

		for _, v := range l.Variants {
			if v.Description == prettyName {
				return l.Item.Name, v.Name
			}
		}
	}

	return "", ""
}

// Languages returns the descriptions of all layouts, in registry order.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.Layouts))
	for _, l := range r.Layouts {
		out = append(out, l.Item.Description)
	}
	return out
}

// Variants returns the descriptions of the variants of lang.
func (r *Registry) Variants(lang string) []string {
	l, ok := r.layout(lang)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(l.Variants))
	for _, v := range l.Variants {
		out = append(out, v.Description)
	}
	return out
}
