package layout

import "github.com/1broseidon/dockgap/internal/platform"

// ToggleStruts flips whether an AvoidStruts layout reserves dock space.
type ToggleStruts struct{}

func (ToggleStruts) MessageName() string { return "toggle-struts" }

// ReductionSource produces the current strut reduction. It is asked afresh on
// every arrangement.
type ReductionSource interface {
	ComputeReduction() func(platform.Rect) platform.Rect
}

// AvoidStruts shrinks the area handed to an inner layout so windows stay clear
// of docks and panels. Values are immutable; every state change returns a
// new *AvoidStruts.
type AvoidStruts struct {
	enabled bool
	inner   Layout
	gaps    ReductionSource
}

var _ Layout = (*AvoidStruts)(nil)

// NewAvoidStruts wraps inner with strut avoidance enabled.
func NewAvoidStruts(gaps ReductionSource, inner Layout) *AvoidStruts {
	return &AvoidStruts{enabled: true, inner: inner, gaps: gaps}
}

// Enabled reports whether dock space is currently reserved.
func (a *AvoidStruts) Enabled() bool { return a.enabled }

// Inner returns the wrapped layout.
func (a *AvoidStruts) Inner() Layout { return a.inner }

func (a *AvoidStruts) Arrange(area platform.Rect, windows []platform.WindowID) ([]Placement, Layout, error) {
	if a.enabled {
		area = a.gaps.ComputeReduction()(area)
	}
	placements, next, err := a.inner.Arrange(area, windows)
	return placements, a.rewrap(next), err
}

// ArrangeEmpty covers the whole area; struts are not applied.
func (a *AvoidStruts) ArrangeEmpty(area platform.Rect) ([]Placement, Layout, error) {
	placements, next, err := a.inner.ArrangeEmpty(area)
	return placements, a.rewrap(next), err
}

func (a *AvoidStruts) HandleMessage(msg Message) Layout {
	if _, ok := msg.(ToggleStruts); ok {
		return &AvoidStruts{enabled: !a.enabled, inner: a.inner, gaps: a.gaps}
	}
	return a.rewrap(a.inner.HandleMessage(msg))
}

func (a *AvoidStruts) Description() string {
	return a.inner.Description()
}

// rewrap carries the enabled flag over to a replacement inner layout. A nil
// replacement stays nil so callers can tell nothing changed.
func (a *AvoidStruts) rewrap(inner Layout) Layout {
	if inner == nil {
		return nil
	}
	return &AvoidStruts{enabled: a.enabled, inner: inner, gaps: a.gaps}
}
