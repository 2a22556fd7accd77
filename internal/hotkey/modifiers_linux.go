//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"klayout/internal/config"
)

// modifierMap maps config modifiers onto X11 modifier masks.
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.Mod1,
	config.ModSuper: hotkey.Mod4,
}
