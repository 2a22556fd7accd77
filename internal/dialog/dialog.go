// Package dialog provides the zenity dialogs of the widget.
package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/zenity"

	"klayout/internal/config"
	"klayout/internal/i18n"
)

// ErrCanceled is returned when the user closes a dialog without choosing.
var ErrCanceled = zenity.ErrCanceled

// MenuAction is an entry of the toolbar context menu.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuSettings
	MenuAbout
	MenuExit
)

// ContextMenu asks for one of Settings, About and Exit. Cancelling
// yields MenuNone.
func ContextMenu() (MenuAction, error) {
	labels := map[string]MenuAction{
		i18n.T("menu_settings"): MenuSettings,
		i18n.T("menu_about"):    MenuAbout,
		i18n.T("menu_exit"):     MenuExit,
	}

	choice, err := zenity.List(
		i18n.T("menu_prompt"),
		[]string{i18n.T("menu_settings"), i18n.T("menu_about"), i18n.T("menu_exit")},
		zenity.Title(i18n.T("app_name")),
		zenity.DisallowEmpty(),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return MenuNone, nil
	}
	if err != nil {
		return MenuNone, fmt.Errorf("context menu: %w", err)
	}
	return labels[choice], nil
}

// modifierLabels are the chooser labels, in AvailableModifiers order.
var modifierLabels = []string{"Ctrl", "Shift", "Alt", "Super (Win)"}

// keyLabel is the chooser label of k.
func keyLabel(k config.Key) string {
	switch k {
	case config.KeySpace:
		return "Space"
	case config.KeyReturn:
		return "Return"
	case config.KeyTab:
		return "Tab"
	default:
		return strings.ToUpper(string(k))
	}
}

// SelectHotkey asks for modifiers, then a key. It returns current and the
// error when the user cancels either step.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	mods := config.AvailableModifiers()

	var selected []string
	for _, m := range current.Modifiers {
		for i, avail := range mods {
			if m == avail {
				selected = append(selected, modifierLabels[i])
			}
		}
	}

	chosenMods, err := zenity.ListMultiple(
		i18n.T("hotkey_pick_mods"),
		modifierLabels,
		zenity.Title(i18n.T("hotkey_title_mods")),
		zenity.DefaultItems(selected...),
	)
	if err != nil {
		return current, err
	}

	newMods, err := parseModifiers(chosenMods)
	if err != nil {
		return current, err
	}

	keys := config.AvailableKeys()
	keyLabels := make([]string, len(keys))
	for i, k := range keys {
		keyLabels[i] = keyLabel(k)
	}

	chosenKey, err := zenity.List(
		i18n.T("hotkey_pick_key"),
		keyLabels,
		zenity.Title(i18n.T("hotkey_title_key")),
		zenity.DefaultItems(keyLabel(current.Key)),
		zenity.DisallowEmpty(),
	)
	if err != nil {
		return current, err
	}

	for i, label := range keyLabels {
		if label == chosenKey {
			return config.HotkeyConfig{Modifiers: newMods, Key: keys[i]}, nil
		}
	}
	return current, fmt.Errorf("unknown key %q", chosenKey)
}

// parseModifiers maps chooser labels back to modifiers.
func parseModifiers(labels []string) ([]config.Modifier, error) {
	if len(labels) == 0 {
		return nil, errors.New(i18n.T("hotkey_need_mod"))
	}

	mods := config.AvailableModifiers()
	out := make([]config.Modifier, 0, len(labels))
	for _, l := range labels {
		for i, ml := range modifierLabels {
			if l == ml {
				out = append(out, mods[i])
				break
			}
		}
	}
	return out, nil
}

// ShowAbout shows the About box.
func ShowAbout() {
	ShowInfo(i18n.T("menu_about"), i18n.T("about_text"))
}

// ShowInfo shows an information message.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError shows an error message.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
