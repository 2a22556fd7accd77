package settings

import (
	"image/color"

	"github.com/ncruces/zenity"

	"klayout/internal/config"
	"klayout/internal/dialog"
)

// Zenity shows the dialogs with zenity.
type Zenity struct{}

func (Zenity) Choose(title, text string, items []string) (string, error) {
	return zenity.List(text, items, zenity.Title(title), zenity.DisallowEmpty())
}

func (Zenity) Entry(title, text, initial string) (string, error) {
	return zenity.Entry(text, zenity.Title(title), zenity.EntryText(initial))
}

func (Zenity) Color(title string, initial color.NRGBA) (color.NRGBA, error) {
	c, err := zenity.SelectColor(zenity.Title(title), zenity.Color(initial))
	if err != nil {
		return initial, err
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA), nil
}

func (Zenity) Hotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	return dialog.SelectHotkey(current)
}

func (Zenity) Error(title, text string) {
	dialog.ShowError(title, text)
}
