package wm

// ClampPosition keeps a window of the given height from moving below the
// bottom edge of the screen. Other edges are left alone.
func ClampPosition(x, y, height, screenHeight int) (int, int) {
	bottom := screenHeight - height
	if y > bottom {
		y = bottom
	}
	return x, y
}

// BottomRight returns the position that puts a width x height window in
// the bottom-right corner of the screen.
func BottomRight(width, height, screenWidth, screenHeight int) (int, int) {
	return screenWidth - width, screenHeight - height
}

// Above returns the position for a window of the given height placed
// directly above anchor, kept on screen.
func Above(anchor Rect, height int) (int, int) {
	y := anchor.Y - height
	if y < 0 {
		y = anchor.Y + anchor.Height
	}
	return anchor.X, y
}
