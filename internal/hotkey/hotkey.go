// Package hotkey registers the global layout switching shortcut.
package hotkey

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"klayout/internal/config"
)

// debounceInterval filters key repeat of a held shortcut.
const debounceInterval = 300 * time.Millisecond

// Handler delivers presses of one registered shortcut.
type Handler struct {
	mu      sync.Mutex
	hk      *hotkey.Hotkey
	onPress func()
	current config.HotkeyConfig
	stopCh  chan struct{}
	log     *zap.SugaredLogger
}

// New creates a handler calling onPress for every debounced key press.
func New(onPress func(), log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		onPress: onPress,
		log:     log,
	}
}

// resolve converts a config shortcut to hotkey values.
func resolve(cfg config.HotkeyConfig) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[cfg.Key]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key %q", cfg.Key)
	}

	mods := make([]hotkey.Modifier, 0, len(cfg.Modifiers))
	for _, m := range cfg.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier %q", m)
		}
		mods = append(mods, mod)
	}
	if len(mods) == 0 {
		return nil, 0, errors.New("shortcut needs at least one modifier")
	}

	return mods, key, nil
}

// Register grabs cfg, replacing any shortcut registered before.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	mods, key, err := resolve(cfg)
	if err != nil {
		return fmt.Errorf("hotkey %s: %w", cfg, err)
	}

	h.mu.Lock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	old := h.hk
	h.hk = nil
	h.mu.Unlock()

	// Unregister can hang on some X servers
	if old != nil {
		done := make(chan struct{})
		go func() {
			old.Unregister()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			h.log.Warnw("hotkey unregister timed out", "hotkey", h.Current().String())
		}
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", cfg, err)
	}

	h.mu.Lock()
	h.hk = hk
	h.current = cfg
	h.stopCh = make(chan struct{})
	stopCh := h.stopCh
	h.mu.Unlock()

	h.log.Infow("hotkey registered", "hotkey", cfg.String())
	go h.listen(hk, stopCh)
	return nil
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh chan struct{}) {
	var last time.Time

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(last) < debounceInterval {
				continue
			}
			last = now
			if h.onPress != nil {
				h.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister releases the shortcut.
func (h *Handler) Unregister() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}

	if h.hk != nil {
		err := h.hk.Unregister()
		h.hk = nil
		return err
	}
	return nil
}

// Current returns the registered shortcut.
func (h *Handler) Current() config.HotkeyConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// RunOnMainThread runs fn with the OS main thread available to the
// hotkey package.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// keyMap maps config keys onto hotkey keys.
var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyTab:    hotkey.KeyTab,
	config.KeyA:      hotkey.KeyA,
	config.KeyB:      hotkey.KeyB,
	config.KeyC:      hotkey.KeyC,
	config.KeyD:      hotkey.KeyD,
	config.KeyE:      hotkey.KeyE,
	config.KeyF:      hotkey.KeyF,
	config.KeyG:      hotkey.KeyG,
	config.KeyH:      hotkey.KeyH,
	config.KeyI:      hotkey.KeyI,
	config.KeyJ:      hotkey.KeyJ,
	config.KeyK:      hotkey.KeyK,
	config.KeyL:      hotkey.KeyL,
	config.KeyM:      hotkey.KeyM,
	config.KeyN:      hotkey.KeyN,
	config.KeyO:      hotkey.KeyO,
	config.KeyP:      hotkey.KeyP,
	config.KeyQ:      hotkey.KeyQ,
	config.KeyR:      hotkey.KeyR,
	config.KeyS:      hotkey.KeyS,
	config.KeyT:      hotkey.KeyT,
	config.KeyU:      hotkey.KeyU,
	config.KeyV:      hotkey.KeyV,
	config.KeyW:      hotkey.KeyW,
	config.KeyX:      hotkey.KeyX,
	config.KeyY:      hotkey.KeyY,
	config.KeyZ:      hotkey.KeyZ,
	config.KeyF1:     hotkey.KeyF1,
	config.KeyF2:     hotkey.KeyF2,
	config.KeyF3:     hotkey.KeyF3,
	config.KeyF4:     hotkey.KeyF4,
	config.KeyF5:     hotkey.KeyF5,
	config.KeyF6:     hotkey.KeyF6,
	config.KeyF7:     hotkey.KeyF7,
	config.KeyF8:     hotkey.KeyF8,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
	config.KeyF11:    hotkey.KeyF11,
	config.KeyF12:    hotkey.KeyF12,
}
