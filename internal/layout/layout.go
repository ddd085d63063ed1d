// Package layout defines the arrangement protocol shared by every tiling
// algorithm and the decorators that wrap them.
package layout

import "github.com/1broseidon/dockgap/internal/platform"

// Placement assigns a window its target geometry.
type Placement struct {
	Window platform.WindowID
	Bounds platform.Rect
}

// Message is a control message delivered to a layout. Layouts act on the
// variants they recognise and ignore or forward the rest.
type Message interface {
	MessageName() string
}

// Layout is an arrangement algorithm. State changes are reported by returning
// a replacement Layout; a nil replacement means the layout is unchanged.
// Implementations must not mutate themselves.
type Layout interface {
	// Arrange places windows inside area.
	Arrange(area platform.Rect, windows []platform.WindowID) ([]Placement, Layout, error)
	// ArrangeEmpty runs a pass with no windows, used for background and
	// decoration-only passes over the whole area.
	ArrangeEmpty(area platform.Rect) ([]Placement, Layout, error)
	HandleMessage(msg Message) Layout
	Description() string
}
