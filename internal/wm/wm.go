// Package wm talks to the X server to place windows and keep them on top.
package wm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrWindowNotFound is returned when no window carries the requested title.
var ErrWindowNotFound = errors.New("window not found")

// Window is an X11 window id.
type Window = xproto.Window

// Rect is a window position and size in root coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

const netWMStateAdd = 1

// Manager wraps an X connection. It is safe for concurrent use.
type Manager struct {
	conn *xgb.Conn
	root xproto.Window

	screenWidth  int
	screenHeight int

	atomNetWMName  xproto.Atom
	atomUTF8String xproto.Atom
	atomNetWMState xproto.Atom
	atomAbove      xproto.Atom
}

// Connect opens the display named by $DISPLAY.
func Connect() (*Manager, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	m := &Manager{
		conn:         conn,
		root:         screen.Root,
		screenWidth:  int(screen.WidthInPixels),
		screenHeight: int(screen.HeightInPixels),
	}

	atoms := []struct {
		name string
		dst  *xproto.Atom
	}{
		{"_NET_WM_NAME", &m.atomNetWMName},
		{"UTF8_STRING", &m.atomUTF8String},
		{"_NET_WM_STATE", &m.atomNetWMState},
		{"_NET_WM_STATE_ABOVE", &m.atomAbove},
	}
	for _, a := range atoms {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("intern atom %s: %w", a.name, err)
		}
		*a.dst = reply.Atom
	}

	return m, nil
}

// Close closes the X connection.
func (m *Manager) Close() {
	m.conn.Close()
}

// ScreenSize returns the default screen size in pixels.
func (m *Manager) ScreenSize() (width, height int) {
	return m.screenWidth, m.screenHeight
}

// FindByName searches the window tree for a window titled name.
func (m *Manager) FindByName(name string) (Window, error) {
	win, ok, err := m.find(m.root, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrWindowNotFound)
	}
	return win, nil
}

// WaitForWindow polls FindByName until the window shows up.
func (m *Manager) WaitForWindow(ctx context.Context, name string, timeout time.Duration) (Window, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		win, err := m.FindByName(name)
		if err == nil {
			return win, nil
		}
		if !errors.Is(err, ErrWindowNotFound) {
			return 0, err
		}

		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("wait for %q: %w", name, err)
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (m *Manager) find(parent xproto.Window, name string) (xproto.Window, bool, error) {
	tree, err := xproto.QueryTree(m.conn, parent).Reply()
	if err != nil {
		return 0, false, fmt.Errorf("query tree: %w", err)
	}

	for _, child := range tree.Children {
		if m.windowName(child) == name {
			return child, true, nil
		}
		// children may vanish between the two requests, skip them
		if win, ok, err := m.find(child, name); err == nil && ok {
			return win, true, nil
		}
	}
	return 0, false, nil
}

func (m *Manager) windowName(win xproto.Window) string {
	reply, err := xproto.GetProperty(m.conn, false, win, m.atomNetWMName, m.atomUTF8String, 0, 256).Reply()
	if err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}

	reply, err = xproto.GetProperty(m.conn, false, win, xproto.AtomWmName, xproto.GetPropertyTypeAny, 0, 256).Reply()
	if err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	return ""
}

// Geometry returns the window rectangle in root coordinates.
func (m *Manager) Geometry(win Window) (Rect, error) {
	geom, err := xproto.GetGeometry(m.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("get geometry: %w", err)
	}

	pos, err := xproto.TranslateCoordinates(m.conn, win, m.root, 0, 0).Reply()
	if err != nil {
		return Rect{}, fmt.Errorf("translate coordinates: %w", err)
	}

	return Rect{
		X:      int(pos.DstX),
		Y:      int(pos.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// Move places the window's top-left corner at x, y.
func (m *Manager) Move(win Window, x, y int) error {
	values := []uint32{uint32(int32(x)), uint32(int32(y))}
	err := xproto.ConfigureWindowChecked(m.conn, win, xproto.ConfigWindowX|xproto.ConfigWindowY, values).Check()
	if err != nil {
		return fmt.Errorf("move window: %w", err)
	}
	return nil
}

// SetAbove asks the window manager to keep win above other windows and
// raises it. Some window managers drop the state, so callers repeat it.
func (m *Manager) SetAbove(win Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   m.atomNetWMState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{netWMStateAdd, uint32(m.atomAbove), 0, 1, 0}),
	}

	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	if err := xproto.SendEventChecked(m.conn, false, m.root, mask, string(ev.Bytes())).Check(); err != nil {
		return fmt.Errorf("send _NET_WM_STATE: %w", err)
	}

	err := xproto.ConfigureWindowChecked(m.conn, win, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
	if err != nil {
		return fmt.Errorf("raise window: %w", err)
	}
	return nil
}
