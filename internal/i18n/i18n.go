// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN
)

var translations = map[Language]map[string]string{
	EN: {
		"app_name":    "KLayout",
		"app_tooltip": "KLayout - keyboard layout switcher",
		"about_text": "KLayout\n\n" +
			"Switches between keyboard layouts on lightweight X11 desktops.\n\n" +
			"Thank you for using this program!",

		// Toolbar context menu
		"menu_prompt":   "Choose an action:",
		"menu_settings": "Settings...",
		"menu_about":    "About...",
		"menu_exit":     "Exit...",

		// Tray
		"tray_layout":             "Layout: %s",
		"tray_next":               "Next layout",
		"tray_next_hint":          "Switch to the next keyboard layout",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show desktop notifications",
		"tray_settings":           "Settings...",
		"tray_settings_hint":      "Open settings",
		"tray_about":              "About...",
		"tray_quit":               "Exit",
		"tray_quit_hint":          "Close KLayout",

		// Error popup
		"popup_title":   "KLayout: error",
		"popup_header":  "While switching keyboard layout to \"%s\", an error occurred:",
		"popup_details": "Details: %s",
		"popup_retry":   "Retry?",
		"popup_skip":    "Skip? (automatically in %d seconds)",

		// Settings
		"settings_title":         "KLayout settings",
		"settings_prompt":        "Choose what to change, then Save:",
		"settings_layouts":       "Keyboard layouts...",
		"settings_startup_on":    "Run on OS startup: on",
		"settings_startup_off":   "Run on OS startup: off",
		"settings_background":    "Background color...",
		"settings_foreground":    "Foreground color...",
		"settings_font":          "Font...",
		"settings_hotkey":        "Hotkey (%s)...",
		"settings_language":      "Interface language...",
		"settings_save":          "Save",
		"settings_cancel":        "Cancel",
		"settings_layouts_title": "Keyboard layouts",
		"settings_layouts_list":  "Configured layouts: %s",
		"settings_add":           "Add...",
		"settings_modify":        "Modify...",
		"settings_remove":        "Remove...",
		"settings_back":          "Back",
		"settings_pick_layout":   "Choose a layout:",
		"settings_pick_language": "Choose a language:",
		"settings_pick_variant":  "Choose a variant:",
		"settings_no_variant":    "(no variant)",
		"settings_enter_layout":  "Layout code and optional variant, e.g. \"cz qwerty\":",
		"settings_font_prompt":   "Font: family, size and style, e.g. \"Arial 14 bold\":",
		"settings_last_layout":   "At least one keyboard layout is required.",
		"settings_invalid":       "Invalid value",

		// Hotkey chooser
		"hotkey_title_mods": "Hotkey - modifiers",
		"hotkey_title_key":  "Hotkey - key",
		"hotkey_pick_mods":  "Choose modifiers:",
		"hotkey_pick_key":   "Choose a key:",
		"hotkey_need_mod":   "choose at least one modifier",

		// Notifications
		"notify_skipped":     "Layout skipped",
		"notify_skipped_msg": "Could not switch to \"%s\": %s",
		"notify_error":       "Error",

		// Errors
		"error_hotkey_register": "Could not register hotkey",
		"error_settings_save":   "Could not save settings",
		"error_autostart":       "Could not update autostart entry",
		"error_restart":         "Could not restart",
	},
	RU: {
		"app_name":    "KLayout",
		"app_tooltip": "KLayout - переключатель раскладок",
		"about_text": "KLayout\n\n" +
			"Переключает раскладки клавиатуры в лёгких окружениях X11.\n\n" +
			"Спасибо, что пользуетесь программой!",

		"menu_prompt":   "Выберите действие:",
		"menu_settings": "Настройки...",
		"menu_about":    "О программе...",
		"menu_exit":     "Выход...",

		"tray_layout":             "Раскладка: %s",
		"tray_next":               "Следующая раскладка",
		"tray_next_hint":          "Переключить на следующую раскладку",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_settings":           "Настройки...",
		"tray_settings_hint":      "Открыть настройки",
		"tray_about":              "О программе...",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть KLayout",

		"popup_title":   "KLayout: ошибка",
		"popup_header":  "При переключении раскладки на \"%s\" произошла ошибка:",
		"popup_details": "Подробности: %s",
		"popup_retry":   "Повторить?",
		"popup_skip":    "Пропустить? (автоматически через %d с)",

		"settings_title":         "Настройки KLayout",
		"settings_prompt":        "Выберите, что изменить, затем Сохранить:",
		"settings_layouts":       "Раскладки клавиатуры...",
		"settings_startup_on":    "Запуск при старте системы: вкл",
		"settings_startup_off":   "Запуск при старте системы: выкл",
		"settings_background":    "Цвет фона...",
		"settings_foreground":    "Цвет текста...",
		"settings_font":          "Шрифт...",
		"settings_hotkey":        "Горячая клавиша (%s)...",
		"settings_language":      "Язык интерфейса...",
		"settings_save":          "Сохранить",
		"settings_cancel":        "Отмена",
		"settings_layouts_title": "Раскладки клавиатуры",
		"settings_layouts_list":  "Настроенные раскладки: %s",
		"settings_add":           "Добавить...",
		"settings_modify":        "Изменить...",
		"settings_remove":        "Удалить...",
		"settings_back":          "Назад",
		"settings_pick_layout":   "Выберите раскладку:",
		"settings_pick_language": "Выберите язык:",
		"settings_pick_variant":  "Выберите вариант:",
		"settings_no_variant":    "(без варианта)",
		"settings_enter_layout":  "Код раскладки и, при необходимости, вариант, например \"cz qwerty\":",
		"settings_font_prompt":   "Шрифт: семейство, размер и стиль, например \"Arial 14 bold\":",
		"settings_last_layout":   "Нужна хотя бы одна раскладка.",
		"settings_invalid":       "Неверное значение",

		"hotkey_title_mods": "Горячая клавиша - модификаторы",
		"hotkey_title_key":  "Горячая клавиша - клавиша",
		"hotkey_pick_mods":  "Выберите модификаторы:",
		"hotkey_pick_key":   "Выберите клавишу:",
		"hotkey_need_mod":   "необходимо выбрать хотя бы один модификатор",

		"notify_skipped":     "Раскладка пропущена",
		"notify_skipped_msg": "Не удалось переключить на \"%s\": %s",
		"notify_error":       "Ошибка",

		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_settings_save":   "Не удалось сохранить настройки",
		"error_autostart":       "Не удалось обновить автозапуск",
		"error_restart":         "Не удалось перезапуститься",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// Tf formats the translation for key with args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
