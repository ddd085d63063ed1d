package hotkeys

import (
	"fmt"
	"log"
	"sync"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/platform"
	"github.com/1broseidon/dockgap/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Tiler is the set of tiling operations bound to keys.
type Tiler interface {
	Tile() error
	Undo() error
	ToggleStruts() (bool, error)
	SendMessage(msg layout.Message) (bool, error)
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootXWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu    *xgbutil.XUtil
	root  xproto.Window
	tiler Tiler
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, tiler Tiler) (*Handler, error) {
	accessor, ok := backend.(x11Accessor)
	if !ok {
		return nil, fmt.Errorf("hotkeys require an X11 backend")
	}
	xu := accessor.XUtil()

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:    xu,
		root:  accessor.RootXWindow(),
		tiler: tiler,
	}, nil
}

// Binding is one configured key sequence and its action.
type Binding struct {
	Name   string
	Keys   string
	Action func()
}

// Bindings maps the configured hotkeys onto tiler operations. Empty key
// sequences are left out.
func Bindings(cfg *config.Config, tiler Tiler) []Binding {
	all := []Binding{
		{Name: "tile", Keys: cfg.Hotkey, Action: func() {
			log.Println("Tiling hotkey triggered!")
			if err := tiler.Tile(); err != nil {
				log.Printf("Tiling failed: %v", err)
			}
		}},
		{Name: "toggle_struts", Keys: cfg.ToggleStrutsHotkey, Action: func() {
			enabled, err := tiler.ToggleStruts()
			if err != nil {
				log.Printf("Toggle struts failed: %v", err)
				return
			}
			log.Printf("Dock space reserved: %v", enabled)
		}},
		{Name: "undo", Keys: cfg.UndoHotkey, Action: func() {
			if err := tiler.Undo(); err != nil {
				log.Printf("Undo failed: %v", err)
			}
		}},
		{Name: "shrink", Keys: cfg.ShrinkHotkey, Action: func() {
			if _, err := tiler.SendMessage(tiling.Shrink{}); err != nil {
				log.Printf("Shrink failed: %v", err)
			}
		}},
		{Name: "expand", Keys: cfg.ExpandHotkey, Action: func() {
			if _, err := tiler.SendMessage(tiling.Expand{}); err != nil {
				log.Printf("Expand failed: %v", err)
			}
		}},
	}

	bindings := make([]Binding, 0, len(all))
	for _, b := range all {
		if b.Keys != "" {
			bindings = append(bindings, b)
		}
	}
	return bindings
}

// RegisterAll grabs every configured hotkey. The first failing grab is
// returned after the rest have been attempted.
func (h *Handler) RegisterAll(cfg *config.Config) error {
	var firstErr error
	for _, b := range Bindings(cfg, h.tiler) {
		if err := h.RegisterFunc(b.Keys, b.Action); err != nil {
			log.Printf("Failed to register %s hotkey %q: %v", b.Name, b.Keys, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to register %s hotkey: %w", b.Name, err)
			}
			continue
		}
		log.Printf("Registered %s hotkey: %s", b.Name, b.Keys)
	}
	return firstErr
}

// UnregisterAll releases every grabbed hotkey, used before re-registering on
// config reload.
func (h *Handler) UnregisterAll() {
	keybind.Detach(h.xu, h.root)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
