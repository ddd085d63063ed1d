package hotkeys

import (
	"testing"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/tiling"
)

type fakeTiler struct {
	tiles    int
	undos    int
	toggles  int
	messages []string
}

func (f *fakeTiler) Tile() error { f.tiles++; return nil }
func (f *fakeTiler) Undo() error { f.undos++; return nil }
func (f *fakeTiler) ToggleStruts() (bool, error) {
	f.toggles++
	return f.toggles%2 == 0, nil
}
func (f *fakeTiler) SendMessage(msg layout.Message) (bool, error) {
	f.messages = append(f.messages, msg.MessageName())
	return true, nil
}

func TestBindings_RunTilerOperations(t *testing.T) {
	cfg := config.DefaultConfig()
	tiler := &fakeTiler{}

	bindings := Bindings(cfg, tiler)
	if len(bindings) != 5 {
		t.Fatalf("expected 5 bindings, got %d", len(bindings))
	}
	for _, b := range bindings {
		b.Action()
	}

	if tiler.tiles != 1 || tiler.undos != 1 || tiler.toggles != 1 {
		t.Fatalf("unexpected calls: %+v", tiler)
	}
	want := []string{tiling.Shrink{}.MessageName(), tiling.Expand{}.MessageName()}
	if len(tiler.messages) != 2 || tiler.messages[0] != want[0] || tiler.messages[1] != want[1] {
		t.Fatalf("expected messages %v, got %v", want, tiler.messages)
	}
}

func TestBindings_SkipsEmptyKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.UndoHotkey = ""
	cfg.ShrinkHotkey = ""

	for _, b := range Bindings(cfg, &fakeTiler{}) {
		if b.Name == "undo" || b.Name == "shrink" {
			t.Fatalf("binding %q should be skipped", b.Name)
		}
	}
}
