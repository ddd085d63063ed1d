package tiling

import (
	"errors"
	"sync"
	"testing"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/platform"
)

const fakeRoot platform.WindowID = 1

// fakeBackend is an in-memory screen with windows, properties and a record
// of every MoveResize call.
type fakeBackend struct {
	mu      sync.Mutex
	screen  platform.Rect
	atoms   map[string]platform.Atom
	props   map[platform.WindowID]map[platform.Atom][]int
	windows []platform.Window
	moves   map[platform.WindowID]platform.Rect
	moveErr map[platform.WindowID]error
}

func newFakeBackend(screen platform.Rect) *fakeBackend {
	return &fakeBackend{
		screen:  screen,
		atoms:   make(map[string]platform.Atom),
		props:   make(map[platform.WindowID]map[platform.Atom][]int),
		moves:   make(map[platform.WindowID]platform.Rect),
		moveErr: make(map[platform.WindowID]error),
	}
}

func (b *fakeBackend) ResolveAtom(name string) (platform.Atom, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if atom, ok := b.atoms[name]; ok {
		return atom, nil
	}
	atom := platform.Atom(100 + len(b.atoms))
	b.atoms[name] = atom
	return atom, nil
}

func (b *fakeBackend) setProp(w platform.WindowID, name string, values ...int) {
	atom, _ := b.ResolveAtom(name)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.props[w] == nil {
		b.props[w] = make(map[platform.Atom][]int)
	}
	b.props[w][atom] = values
}

func (b *fakeBackend) addWindow(id platform.WindowID, bounds platform.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows = append(b.windows, platform.Window{ID: id, Bounds: bounds})
}

// addDock adds a DOCK-typed window reserving thickness pixels at the top.
func (b *fakeBackend) addDock(id platform.WindowID, thickness int) {
	b.addWindow(id, platform.Rect{Width: b.screen.Width, Height: thickness})
	dock, _ := b.ResolveAtom(docks.AtomWindowTypeDock)
	b.setProp(id, docks.AtomWindowType, int(dock))
	b.setProp(id, docks.AtomStrutPartial, 0, 0, thickness, 0, 0, 0, 0, 0, 0, b.screen.Width-1, 0, 0)
}

func (b *fakeBackend) WindowProperty(w platform.WindowID, prop platform.Atom) ([]int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	values, ok := b.props[w][prop]
	return values, ok
}

func (b *fakeBackend) RootWindow() platform.WindowID { return fakeRoot }

func (b *fakeBackend) TopLevelWindows(platform.WindowID) ([]platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]platform.WindowID, len(b.windows))
	for i, w := range b.windows {
		ids[i] = w.ID
	}
	return ids, nil
}

func (b *fakeBackend) WindowGeometry(w platform.WindowID) (platform.Rect, error) {
	if w != fakeRoot {
		return platform.Rect{}, errors.New("not faked")
	}
	return b.screen, nil
}

func (b *fakeBackend) ListWindows() ([]platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.Window(nil), b.windows...), nil
}

func (b *fakeBackend) MoveResize(w platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.moveErr[w]; err != nil {
		return err
	}
	b.moves[w] = bounds
	return nil
}

func (b *fakeBackend) moved(w platform.WindowID) (platform.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.moves[w]
	return r, ok
}

func testConfig(layout string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.GapSize = 0
	cfg.DefaultLayout = layout
	return cfg
}

func newTestTiler(t *testing.T, b *fakeBackend, cfg *config.Config) *Tiler {
	t.Helper()
	tiler, err := NewTiler(b, cfg)
	if err != nil {
		t.Fatalf("new tiler: %v", err)
	}
	return tiler
}

func TestTiler_TileAvoidsDocksAndSkipsThem(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addDock(50, 30)
	b.addWindow(10, platform.Rect{X: 5, Y: 5, Width: 100, Height: 100})

	tiler := newTestTiler(t, b, testConfig("monocle"))
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}

	got, ok := b.moved(10)
	if !ok {
		t.Fatalf("window 10 was not placed")
	}
	if got != (platform.Rect{X: 0, Y: 30, Width: 1000, Height: 770}) {
		t.Fatalf("unexpected placement %+v", got)
	}
	if _, ok := b.moved(50); ok {
		t.Fatalf("dock must never be moved")
	}
	if tiler.Status().WindowCount != 1 {
		t.Fatalf("expected window count 1, got %d", tiler.Status().WindowCount)
	}
}

func TestTiler_ToggleStrutsUsesFullScreen(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addDock(50, 30)
	b.addWindow(10, platform.Rect{})

	tiler := newTestTiler(t, b, testConfig("monocle"))
	enabled, err := tiler.ToggleStruts()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if enabled || tiler.Status().StrutsEnabled {
		t.Fatalf("expected struts disabled after toggle")
	}
	if got, _ := b.moved(10); got != b.screen {
		t.Fatalf("expected full screen placement, got %+v", got)
	}

	enabled, err = tiler.ToggleStruts()
	if err != nil || !enabled {
		t.Fatalf("expected struts re-enabled, got %v %v", enabled, err)
	}
	if got, _ := b.moved(10); got.Y != 30 {
		t.Fatalf("expected dock space reserved again, got %+v", got)
	}
}

func TestTiler_ScreenPadding(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{})

	cfg := testConfig("monocle")
	cfg.ScreenPadding = config.Margins{Left: 10, Right: 20, Top: 5, Bottom: 5}
	tiler := newTestTiler(t, b, cfg)
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	if got, _ := b.moved(10); got != (platform.Rect{X: 10, Y: 5, Width: 970, Height: 790}) {
		t.Fatalf("unexpected placement %+v", got)
	}

	cfg = testConfig("monocle")
	cfg.ScreenPadding = config.Margins{Left: 600, Right: 600}
	if err := newTestTiler(t, b, cfg).Tile(); err == nil {
		t.Fatalf("expected error when padding consumes the screen")
	}
}

func TestTiler_UndoRestoresPreviousGeometry(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	original := platform.Rect{X: 40, Y: 50, Width: 300, Height: 200}
	b.addWindow(10, original)

	tiler := newTestTiler(t, b, testConfig("monocle"))
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	if err := tiler.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, _ := b.moved(10); got != original {
		t.Fatalf("expected %+v restored, got %+v", original, got)
	}

	// A second undo has nothing to restore.
	b.moves = make(map[platform.WindowID]platform.Rect)
	if err := tiler.Undo(); err != nil {
		t.Fatalf("second undo: %v", err)
	}
	if _, ok := b.moved(10); ok {
		t.Fatalf("second undo should not move windows")
	}
}

func TestTiler_UndoOnlyRestoresPlacedWindows(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{X: 5, Y: 5, Width: 100, Height: 100})
	b.addWindow(11, platform.Rect{X: 7, Y: 7, Width: 100, Height: 100})

	cfg := testConfig("single")
	cfg.Layouts["single"] = config.Layout{
		Mode:       config.LayoutModeFixed,
		TileRegion: config.TileRegion{Type: config.RegionFull},
		FixedGrid:  config.FixedGrid{Rows: 1, Cols: 1},
	}
	tiler := newTestTiler(t, b, cfg)
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	if _, ok := b.moved(11); ok {
		t.Fatalf("window 11 is past the layout capacity and must not be tiled")
	}

	if err := tiler.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got, _ := b.moved(10); got != (platform.Rect{X: 5, Y: 5, Width: 100, Height: 100}) {
		t.Fatalf("expected window 10 restored, got %+v", got)
	}
	if got, ok := b.moved(11); ok {
		t.Fatalf("undo moved window 11 that was never tiled: %+v", got)
	}
}

func TestTiler_UndoSkipsWindowsThatFailedToMove(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{X: 1, Y: 1, Width: 50, Height: 50})
	b.addWindow(11, platform.Rect{X: 2, Y: 2, Width: 50, Height: 50})
	b.moveErr[10] = errors.New("gone")

	tiler := newTestTiler(t, b, testConfig("columns"))
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	delete(b.moveErr, 10)
	if err := tiler.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, ok := b.moved(10); ok {
		t.Fatalf("undo should not touch a window the tile pass could not move")
	}
}

func TestTiler_OversizedStrutDoesNotCollapseLayout(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{})
	b.addWindow(11, platform.Rect{})
	b.addWindow(12, platform.Rect{})
	b.setProp(12, docks.AtomStrut, 0, 0, 0, 5000)

	tiler := newTestTiler(t, b, testConfig("columns"))
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	for _, id := range []platform.WindowID{10, 11, 12} {
		got, ok := b.moved(id)
		if !ok {
			t.Fatalf("window %d was not tiled", id)
		}
		if got.Height != 800 || got.Width < 300 {
			t.Fatalf("window %d squeezed by an oversized strut: %+v", id, got)
		}
	}
}

func TestTiler_MoveFailureContinues(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{})
	b.addWindow(11, platform.Rect{})
	b.moveErr[10] = errors.New("gone")

	tiler := newTestTiler(t, b, testConfig("columns"))
	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	if _, ok := b.moved(11); !ok {
		t.Fatalf("second window should still be tiled")
	}
}

func TestTiler_SendMessage(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{})
	b.addWindow(11, platform.Rect{})

	tiler := newTestTiler(t, b, testConfig("master-stack"))
	changed, err := tiler.SendMessage(Expand{})
	if err != nil || !changed {
		t.Fatalf("expected expand to change the layout, got %v %v", changed, err)
	}
	if got, _ := b.moved(10); got.Width != 450 {
		t.Fatalf("expected master width 45%% of 1000, got %+v", got)
	}

	if err := tiler.SetLayout("grid"); err != nil {
		t.Fatalf("set layout: %v", err)
	}
	changed, err = tiler.SendMessage(Shrink{})
	if err != nil || changed {
		t.Fatalf("auto grid should ignore shrink, got %v %v", changed, err)
	}
}

func TestTiler_SetLayoutResetsToggle(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	tiler := newTestTiler(t, b, testConfig("monocle"))

	if _, err := tiler.ToggleStruts(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := tiler.SetLayout("grid"); err != nil {
		t.Fatalf("set layout: %v", err)
	}
	status := tiler.Status()
	if status.Layout != "grid" || !status.StrutsEnabled {
		t.Fatalf("unexpected status %+v", status)
	}
	if err := tiler.SetLayout("missing"); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}

func TestTiler_UpdateConfigKeepsToggleAndFallsBack(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	cfg := testConfig("monocle")
	cfg.Layouts["custom"] = config.Layout{Mode: config.LayoutModeAuto, TileRegion: config.TileRegion{Type: config.RegionFull}}
	tiler := newTestTiler(t, b, cfg)

	if err := tiler.SetLayout("custom"); err != nil {
		t.Fatalf("set layout: %v", err)
	}
	if _, err := tiler.ToggleStruts(); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := tiler.UpdateConfig(testConfig("grid")); err != nil {
		t.Fatalf("update config: %v", err)
	}
	status := tiler.Status()
	if status.Layout != "grid" {
		t.Fatalf("expected fallback to default layout, got %q", status.Layout)
	}
	if status.StrutsEnabled {
		t.Fatalf("expected toggle state preserved across reload")
	}
}

func TestTiler_RetileOnlyAfterTile(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addWindow(10, platform.Rect{})
	tiler := newTestTiler(t, b, testConfig("monocle"))

	if err := tiler.Retile(); err != nil {
		t.Fatalf("retile: %v", err)
	}
	if _, ok := b.moved(10); ok {
		t.Fatalf("retile before any tile must not move windows")
	}

	if err := tiler.Tile(); err != nil {
		t.Fatalf("tile: %v", err)
	}
	b.addDock(50, 40)
	if err := tiler.Retile(); err != nil {
		t.Fatalf("retile: %v", err)
	}
	if got, _ := b.moved(10); got.Y != 40 {
		t.Fatalf("expected retile to respect new dock, got %+v", got)
	}
}

func TestTiler_StrutSnapshot(t *testing.T) {
	b := newFakeBackend(platform.Rect{Width: 1000, Height: 800})
	b.addDock(50, 25)
	tiler := newTestTiler(t, b, testConfig("monocle"))

	snap, err := tiler.StrutSnapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Struts) != 1 || snap.Usable.Y != 25 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
