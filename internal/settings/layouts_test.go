package settings

import (
	"errors"
	"slices"
	"testing"

	"klayout/internal/layout"
)

func TestAddLayout(t *testing.T) {
	list := []string{"us"}

	got, err := AddLayout(list, "  cz   qwerty ")
	if err != nil {
		t.Fatalf("AddLayout: %v", err)
	}
	if !slices.Equal(got, []string{"us", "cz qwerty"}) {
		t.Errorf("AddLayout = %v", got)
	}
	if len(list) != 1 {
		t.Error("AddLayout modified its input")
	}

	if _, err := AddLayout(got, "us"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate add error = %v, want ErrDuplicate", err)
	}

	var pe *layout.ParseError
	if _, err := AddLayout(list, "a b c"); !errors.As(err, &pe) {
		t.Errorf("malformed add error = %v, want ParseError", err)
	}
}

func TestModifyLayout(t *testing.T) {
	list := []string{"us", "ru", "ua"}

	got, err := ModifyLayout(list, 1, "cz qwerty")
	if err != nil {
		t.Fatalf("ModifyLayout: %v", err)
	}
	if !slices.Equal(got, []string{"us", "cz qwerty", "ua"}) {
		t.Errorf("ModifyLayout = %v", got)
	}
	if list[1] != "ru" {
		t.Error("ModifyLayout modified its input")
	}

	// replacing an entry with itself is fine
	if _, err := ModifyLayout(list, 1, "ru"); err != nil {
		t.Errorf("ModifyLayout to same value: %v", err)
	}
	if _, err := ModifyLayout(list, 1, "ua"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate modify error = %v", err)
	}
	if _, err := ModifyLayout(list, 3, "de"); err == nil {
		t.Error("ModifyLayout accepted an out of range index")
	}
}

func TestRemoveLayout(t *testing.T) {
	list := []string{"us", "ru", "ua"}

	got, err := RemoveLayout(list, 0)
	if err != nil {
		t.Fatalf("RemoveLayout: %v", err)
	}
	if !slices.Equal(got, []string{"ru", "ua"}) {
		t.Errorf("RemoveLayout = %v", got)
	}
	if !slices.Equal(list, []string{"us", "ru", "ua"}) {
		t.Errorf("RemoveLayout modified its input: %v", list)
	}

	if _, err := RemoveLayout([]string{"us"}, 0); !errors.Is(err, ErrLastLayout) {
		t.Errorf("removing the last layout: err = %v, want ErrLastLayout", err)
	}
	if _, err := RemoveLayout(list, -1); err == nil {
		t.Error("RemoveLayout accepted a negative index")
	}
}
