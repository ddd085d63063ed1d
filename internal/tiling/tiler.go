package tiling

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/platform"
)

// Status describes the tiler state reported over IPC.
type Status struct {
	Layout        string    `json:"layout"`
	Description   string    `json:"description"`
	StrutsEnabled bool      `json:"struts_enabled"`
	WindowCount   int       `json:"window_count"`
	LastTiledAt   time.Time `json:"last_tiled_at,omitempty"`
}

// Tiler owns the active layout and applies it to the managed windows of the
// root screen. All methods are safe for concurrent use.
type Tiler struct {
	mu         sync.Mutex
	backend    platform.Backend
	classifier *docks.Classifier
	gaps       *docks.Calculator
	config     *config.Config

	layoutName  string
	current     layout.Layout
	previous    map[platform.WindowID]platform.Rect
	windowCount int
	lastTiledAt time.Time
}

// NewTiler creates a tiler using the config's default layout.
func NewTiler(backend platform.Backend, cfg *config.Config) (*Tiler, error) {
	classifier, err := docks.NewClassifier(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create dock classifier: %w", err)
	}
	gaps, err := docks.NewCalculator(backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create gap calculator: %w", err)
	}

	t := &Tiler{
		backend:    backend,
		classifier: classifier,
		gaps:       gaps,
		config:     cfg,
	}
	if err := t.setLayoutLocked(cfg.DefaultLayout); err != nil {
		return nil, err
	}
	return t, nil
}

// Tile arranges every managed window with the active layout.
func (t *Tiler) Tile() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tileLocked()
}

// Retile re-applies the active layout if windows have been tiled before.
// It is used when the dock set changes underneath a tiled screen.
func (t *Tiler) Retile() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastTiledAt.IsZero() {
		return nil
	}
	return t.tileLocked()
}

func (t *Tiler) tileLocked() error {
	log.Printf("=== Starting tiling operation (%s) ===", t.layoutName)

	area, err := t.usableAreaLocked()
	if err != nil {
		log.Printf("Failed to get screen area: %v", err)
		return err
	}

	all, err := t.backend.ListWindows()
	if err != nil {
		log.Printf("Failed to list windows: %v", err)
		return err
	}
	windows := t.classifier.Manageable(all)
	log.Printf("Found %d manageable window(s) of %d", len(windows), len(all))

	if len(windows) == 0 {
		_, next, err := t.current.ArrangeEmpty(area)
		if err != nil {
			return err
		}
		t.replaceLocked(next)
		t.windowCount = 0
		log.Println("No windows to tile")
		return nil
	}

	ids := make([]platform.WindowID, len(windows))
	bounds := make(map[platform.WindowID]platform.Rect, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
		bounds[w.ID] = w.Bounds
	}

	placements, next, err := t.current.Arrange(area, ids)
	if err != nil {
		return err
	}
	t.replaceLocked(next)

	if len(placements) < len(windows) {
		log.Printf("Layout capacity reached, leaving %d window(s) untouched", len(windows)-len(placements))
	}

	// Only windows that were actually moved are restored by Undo.
	previous := make(map[platform.WindowID]platform.Rect, len(placements))
	for i, p := range placements {
		log.Printf("Tiling window %d (ID: %d) to position (%d,%d) size %dx%d",
			i+1, p.Window, p.Bounds.X, p.Bounds.Y, p.Bounds.Width, p.Bounds.Height)
		if p.Bounds.Width < 1 || p.Bounds.Height < 1 {
			log.Printf("Warning: Skipping window %d (invalid geometry: %dx%d)", p.Window, p.Bounds.Width, p.Bounds.Height)
			continue
		}
		if err := t.backend.MoveResize(p.Window, p.Bounds); err != nil {
			log.Printf("Warning: Failed to tile window %d: %v", p.Window, err)
			continue
		}
		previous[p.Window] = bounds[p.Window]
	}

	t.previous = previous
	t.windowCount = len(placements)
	t.lastTiledAt = time.Now()
	log.Printf("=== Tiling completed successfully ===")
	return nil
}

// usableAreaLocked is the root geometry minus screen_padding. Strut
// avoidance happens inside the layout.
func (t *Tiler) usableAreaLocked() (platform.Rect, error) {
	bounds, err := t.backend.WindowGeometry(t.backend.RootWindow())
	if err != nil {
		return platform.Rect{}, err
	}

	padding := t.config.ScreenPadding
	bounds.X += padding.Left
	bounds.Y += padding.Top
	bounds.Width -= padding.Left + padding.Right
	bounds.Height -= padding.Top + padding.Bottom
	if bounds.Width < 1 || bounds.Height < 1 {
		return platform.Rect{}, fmt.Errorf(
			"screen_padding leaves no usable space: %dx%d at %d,%d",
			bounds.Width, bounds.Height, bounds.X, bounds.Y,
		)
	}
	return bounds, nil
}

// Undo restores the geometry windows had before the last tile pass.
func (t *Tiler) Undo() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.previous) == 0 {
		return nil
	}
	var firstErr error
	for windowID, rect := range t.previous {
		if err := t.backend.MoveResize(windowID, rect); err != nil {
			log.Printf("Warning: Failed to restore window %d: %v", windowID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	t.previous = nil
	return firstErr
}

// ToggleStruts flips strut avoidance, re-tiles and returns the new state.
func (t *Tiler) ToggleStruts() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.replaceLocked(t.current.HandleMessage(layout.ToggleStruts{}))
	enabled := t.strutsEnabledLocked()
	log.Printf("Strut avoidance enabled: %v", enabled)
	return enabled, t.tileLocked()
}

// SendMessage delivers msg to the active layout. When the layout changes the
// screen is re-tiled. It reports whether the layout changed.
func (t *Tiler) SendMessage(msg layout.Message) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.current.HandleMessage(msg)
	if next == nil {
		log.Printf("Layout %s ignored message %s", t.layoutName, msg.MessageName())
		return false, nil
	}
	t.current = next
	return true, t.tileLocked()
}

// SetLayout makes name the active layout. Strut avoidance starts enabled.
func (t *Tiler) SetLayout(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.setLayoutLocked(name)
}

func (t *Tiler) setLayoutLocked(name string) error {
	l, err := t.config.GetLayout(name)
	if err != nil {
		return err
	}
	t.layoutName = name
	t.current = layout.NewAvoidStruts(t.gaps, NewGrid(name, *l, t.config.GapSize))
	return nil
}

// UpdateConfig swaps the configuration and rebuilds the active layout. The
// active layout falls back to the default when it no longer exists; the
// strut toggle state is kept.
func (t *Tiler) UpdateConfig(cfg *config.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enabled := t.strutsEnabledLocked()
	t.config = cfg

	name := t.layoutName
	if _, err := cfg.GetLayout(name); err != nil {
		name = cfg.DefaultLayout
	}
	if err := t.setLayoutLocked(name); err != nil {
		return err
	}
	if !enabled {
		t.replaceLocked(t.current.HandleMessage(layout.ToggleStruts{}))
	}
	return nil
}

// Status reports the active layout and the last tile pass.
func (t *Tiler) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Status{
		Layout:        t.layoutName,
		Description:   t.current.Description(),
		StrutsEnabled: t.strutsEnabledLocked(),
		WindowCount:   t.windowCount,
		LastTiledAt:   t.lastTiledAt,
	}
}

// StrutSnapshot reads the current struts and usable area.
func (t *Tiler) StrutSnapshot() (docks.Snapshot, error) {
	return t.gaps.Snapshot()
}

func (t *Tiler) replaceLocked(next layout.Layout) {
	if next != nil {
		t.current = next
	}
}

func (t *Tiler) strutsEnabledLocked() bool {
	if a, ok := t.current.(*layout.AvoidStruts); ok {
		return a.Enabled()
	}
	return false
}
