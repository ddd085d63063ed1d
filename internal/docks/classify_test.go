package docks

import (
	"testing"

	"github.com/1broseidon/dockgap/internal/platform"
)

func TestClassifier_IsDock(t *testing.T) {
	host := newFakeHost(screen)
	dock := int(host.atom(AtomWindowTypeDock))
	desktop := int(host.atom(AtomWindowTypeDesktop))
	normal := int(host.atom("_NET_WM_WINDOW_TYPE_NORMAL"))

	host.set(1, AtomWindowType, dock)
	host.set(2, AtomWindowType, dock, desktop)
	host.set(3, AtomWindowType, desktop)
	host.set(4, AtomWindowType, normal)
	host.set(5, AtomWindowType)

	c, err := NewClassifier(host)
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}

	tests := []struct {
		window platform.WindowID
		want   bool
	}{
		{1, true},
		{2, false},
		{3, true},
		{4, false},
		{5, false},
		{6, false},
	}
	for _, tt := range tests {
		if got := c.IsDock(tt.window); got != tt.want {
			t.Errorf("IsDock(%d) = %v, want %v", tt.window, got, tt.want)
		}
	}
}

func TestClassifier_Manageable(t *testing.T) {
	host := newFakeHost(screen)
	host.set(1, AtomWindowType, int(host.atom(AtomWindowTypeDock)))

	c, err := NewClassifier(host)
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	got := c.Manageable([]platform.Window{{ID: 1}, {ID: 2}, {ID: 3}})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("expected windows 2 and 3, got %+v", got)
	}
}
