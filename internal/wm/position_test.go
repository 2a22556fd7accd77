package wm

import (
	"os"
	"testing"
)

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"inside", 100, 200, 100, 200},
		{"exactly at bottom", 100, 1050, 100, 1050},
		{"below bottom", 100, 1200, 100, 1050},
		{"off left edge is allowed", -40, 10, -40, 10},
		{"above top is allowed", 5, -20, 5, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampPosition(tt.x, tt.y, 30, 1080)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ClampPosition(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestBottomRight(t *testing.T) {
	x, y := BottomRight(25, 30, 1920, 1080)
	if x != 1895 || y != 1050 {
		t.Errorf("BottomRight = (%d, %d), want (1895, 1050)", x, y)
	}
}

func TestAbove(t *testing.T) {
	x, y := Above(Rect{X: 1895, Y: 1050, Width: 25, Height: 30}, 120)
	if x != 1895 || y != 930 {
		t.Errorf("Above = (%d, %d), want (1895, 930)", x, y)
	}

	// no room above: fall back to below the anchor
	x, y = Above(Rect{X: 10, Y: 20, Width: 25, Height: 30}, 120)
	if x != 10 || y != 50 {
		t.Errorf("Above near top = (%d, %d), want (10, 50)", x, y)
	}
}

func TestConnect(t *testing.T) {
	if os.Getenv("DISPLAY") == "" {
		t.Skip("no X display")
	}

	m, err := Connect()
	if err != nil {
		t.Skipf("X server not reachable: %v", err)
	}
	defer m.Close()

	w, h := m.ScreenSize()
	if w <= 0 || h <= 0 {
		t.Errorf("ScreenSize() = %dx%d", w, h)
	}

	if _, err := m.FindByName("klayout-test-no-such-window"); err == nil {
		t.Error("FindByName found a window that does not exist")
	}
}
