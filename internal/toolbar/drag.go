package toolbar

import (
	"image"

	"gioui.org/f32"

	"klayout/internal/wm"
)

// drag tracks a left-button drag. Positions are window-relative pixels.
type drag struct {
	active bool
	grab   f32.Point
}

func (d *drag) start(at f32.Point) {
	d.active = true
	d.grab = at
}

func (d *drag) stop() {
	d.active = false
}

// target returns where the window must move so the grabbed point stays
// under the pointer, clamped to the bottom of the screen.
func (d *drag) target(win wm.Rect, at f32.Point, screenHeight int) image.Point {
	x := win.X + int(at.X-d.grab.X)
	y := win.Y + int(at.Y-d.grab.Y)
	x, y = wm.ClampPosition(x, y, win.Height, screenHeight)
	return image.Pt(x, y)
}
