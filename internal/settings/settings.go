// Package settings implements the settings flow: a series of dialogs that
// edit a copy of the settings and hand it back on Save.
package settings

import (
	"errors"
	"image/color"
	"slices"
	"strings"

	"go.uber.org/zap"

	"klayout/internal/config"
	"klayout/internal/dialog"
	"klayout/internal/i18n"
	"klayout/internal/xkb"
)

// Prompter shows the individual dialogs. Cancelling any of them returns
// dialog.ErrCanceled.
type Prompter interface {
	Choose(title, text string, items []string) (string, error)
	Entry(title, text, initial string) (string, error)
	Color(title string, initial color.NRGBA) (color.NRGBA, error)
	Hotkey(current config.HotkeyConfig) (config.HotkeyConfig, error)
	Error(title, text string)
}

type action int

const (
	actLayouts action = iota
	actStartup
	actBackground
	actForeground
	actFont
	actHotkey
	actLanguage
	actSave
	actCancel
)

// Flow runs the settings dialogs.
type Flow struct {
	prompt   Prompter
	registry *xkb.Registry
	log      *zap.SugaredLogger
}

// New creates a flow. registry may be nil, in which case layouts are
// typed in instead of picked from a list.
func New(p Prompter, registry *xkb.Registry, log *zap.SugaredLogger) *Flow {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Flow{prompt: p, registry: registry, log: log}
}

// Run edits a copy of current. It returns the edited settings and true on
// Save, or current and false on Cancel.
func (f *Flow) Run(current config.Settings) (config.Settings, bool, error) {
	s := current.Clone()

	for {
		items, actions := f.mainMenu(s)
		choice, err := f.prompt.Choose(i18n.T("settings_title"), i18n.T("settings_prompt"), items)
		if errors.Is(err, dialog.ErrCanceled) {
			return current, false, nil
		}
		if err != nil {
			return current, false, err
		}

		i := slices.Index(items, choice)
		if i < 0 {
			continue
		}

		switch actions[i] {
		case actLayouts:
			if err := f.editLayouts(&s); err != nil {
				return current, false, err
			}
		case actStartup:
			s.RunOnStartup = !s.RunOnStartup
		case actBackground:
			f.editColor(&s.Background, i18n.T("settings_background"))
		case actForeground:
			f.editColor(&s.Foreground, i18n.T("settings_foreground"))
		case actFont:
			f.editFont(&s)
		case actHotkey:
			hk, err := f.prompt.Hotkey(s.Hotkey)
			if err != nil {
				f.report(err)
				continue
			}
			s.Hotkey = hk
		case actLanguage:
			f.editLanguage(&s)
		case actSave:
			f.log.Debugw("settings saved", "layouts", s.Layouts)
			return s, true, nil
		case actCancel:
			return current, false, nil
		}
	}
}

func (f *Flow) mainMenu(s config.Settings) ([]string, []action) {
	startup := i18n.T("settings_startup_off")
	if s.RunOnStartup {
		startup = i18n.T("settings_startup_on")
	}

	items := []string{
		i18n.T("settings_layouts"),
		startup,
		i18n.T("settings_background"),
		i18n.T("settings_foreground"),
		i18n.T("settings_font"),
		i18n.Tf("settings_hotkey", s.Hotkey.String()),
		i18n.T("settings_language"),
		i18n.T("settings_save"),
		i18n.T("settings_cancel"),
	}
	actions := []action{
		actLayouts, actStartup, actBackground, actForeground,
		actFont, actHotkey, actLanguage, actSave, actCancel,
	}
	return items, actions
}

// report shows err unless the user simply cancelled.
func (f *Flow) report(err error) {
	if err == nil || errors.Is(err, dialog.ErrCanceled) {
		return
	}
	if errors.Is(err, ErrLastLayout) {
		f.prompt.Error(i18n.T("settings_invalid"), i18n.T("settings_last_layout"))
		return
	}
	f.prompt.Error(i18n.T("settings_invalid"), err.Error())
}

func (f *Flow) editLayouts(s *config.Settings) error {
	title := i18n.T("settings_layouts_title")
	add, modify, remove, back := i18n.T("settings_add"), i18n.T("settings_modify"), i18n.T("settings_remove"), i18n.T("settings_back")

	for {
		text := i18n.Tf("settings_layouts_list", strings.Join(s.Layouts, ", "))
		choice, err := f.prompt.Choose(title, text, []string{add, modify, remove, back})
		if errors.Is(err, dialog.ErrCanceled) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case add:
			id, err := f.chooseLayout("")
			if err != nil {
				f.report(err)
				continue
			}
			list, err := AddLayout(s.Layouts, id)
			if err != nil {
				f.report(err)
				continue
			}
			s.Layouts = list

		case modify:
			i, err := f.pickEntry(title, s.Layouts)
			if err != nil {
				f.report(err)
				continue
			}
			id, err := f.chooseLayout(s.Layouts[i])
			if err != nil {
				f.report(err)
				continue
			}
			list, err := ModifyLayout(s.Layouts, i, id)
			if err != nil {
				f.report(err)
				continue
			}
			s.Layouts = list

		case remove:
			i, err := f.pickEntry(title, s.Layouts)
			if err != nil {
				f.report(err)
				continue
			}
			list, err := RemoveLayout(s.Layouts, i)
			if err != nil {
				f.report(err)
				continue
			}
			s.Layouts = list

		default:
			return nil
		}
	}
}

func (f *Flow) pickEntry(title string, list []string) (int, error) {
	choice, err := f.prompt.Choose(title, i18n.T("settings_pick_layout"), list)
	if err != nil {
		return -1, err
	}
	i := slices.Index(list, choice)
	if i < 0 {
		return -1, dialog.ErrCanceled
	}
	return i, nil
}

// chooseLayout asks for a layout identifier, from the registry when one
// is loaded.
func (f *Flow) chooseLayout(initial string) (string, error) {
	title := i18n.T("settings_layouts_title")

	if f.registry == nil {
		id, err := f.prompt.Entry(title, i18n.T("settings_enter_layout"), initial)
		if err != nil {
			return "", err
		}
		return normalize(id)
	}

	langChoice, err := f.prompt.Choose(title, i18n.T("settings_pick_language"), f.registry.Languages())
	if err != nil {
		return "", err
	}
	lang, _ := f.registry.FromPrettyName(langChoice)
	if lang == "" {
		return "", dialog.ErrCanceled
	}

	variants := f.registry.Variants(lang)
	if len(variants) == 0 {
		return lang, nil
	}

	none := i18n.T("settings_no_variant")
	choice, err := f.prompt.Choose(title, i18n.T("settings_pick_variant"), append([]string{none}, variants...))
	if err != nil {
		return "", err
	}
	if choice == none {
		return lang, nil
	}

	vlang, variant := f.registry.FromPrettyName(choice)
	if vlang == "" || variant == "" {
		return lang, nil
	}
	return vlang + " " + variant, nil
}

func (f *Flow) editColor(field *string, title string) {
	initial, err := config.ParseColor(*field)
	if err != nil {
		initial = color.NRGBA{A: 0xff}
	}

	c, err := f.prompt.Color(title, initial)
	if err != nil {
		f.report(err)
		return
	}
	*field = config.FormatColor(c)
}

func (f *Flow) editFont(s *config.Settings) {
	text, err := f.prompt.Entry(i18n.T("settings_font"), i18n.T("settings_font_prompt"), s.Font)
	if err != nil {
		f.report(err)
		return
	}

	font, err := config.ParseFont(text)
	if err != nil {
		f.report(err)
		return
	}
	s.Font = font.String()
}

func (f *Flow) editLanguage(s *config.Settings) {
	langs := i18n.AvailableLanguages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = i18n.LanguageName(l)
	}

	choice, err := f.prompt.Choose(i18n.T("settings_language"), i18n.T("settings_language"), names)
	if err != nil {
		f.report(err)
		return
	}
	if i := slices.Index(names, choice); i >= 0 {
		s.UILanguage = string(langs[i])
	}
}
