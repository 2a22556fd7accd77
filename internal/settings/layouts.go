package settings

import (
	"errors"
	"fmt"
	"slices"

	"klayout/internal/layout"
)

var (
	// ErrLastLayout is returned when removing the only configured layout.
	ErrLastLayout = errors.New("at least one keyboard layout is required")
	// ErrDuplicate is returned when a layout is already in the list.
	ErrDuplicate = errors.New("layout already in the list")
)

// normalize parses id and renders it in canonical form.
func normalize(id string) (string, error) {
	l, err := layout.Parse(id)
	if err != nil {
		return "", err
	}
	return l.String(), nil
}

// AddLayout returns list with id appended.
func AddLayout(list []string, id string) ([]string, error) {
	norm, err := normalize(id)
	if err != nil {
		return list, err
	}
	if slices.Contains(list, norm) {
		return list, fmt.Errorf("%s: %w", norm, ErrDuplicate)
	}

	out := slices.Clone(list)
	return append(out, norm), nil
}

// ModifyLayout returns list with entry i replaced by id.
func ModifyLayout(list []string, i int, id string) ([]string, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("layout index %d out of range", i)
	}

	norm, err := normalize(id)
	if err != nil {
		return list, err
	}
	if j := slices.Index(list, norm); j >= 0 && j != i {
		return list, fmt.Errorf("%s: %w", norm, ErrDuplicate)
	}

	out := slices.Clone(list)
	out[i] = norm
	return out, nil
}

// RemoveLayout returns list without entry i. The last entry cannot be
// removed.
func RemoveLayout(list []string, i int) ([]string, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("layout index %d out of range", i)
	}
	if len(list) == 1 {
		return list, ErrLastLayout
	}

	return slices.Delete(slices.Clone(list), i, i+1), nil
}
