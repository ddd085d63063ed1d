package tiling

import (
	"fmt"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/platform"
)

// MasterStep is the master width change applied by Shrink and Expand.
const MasterStep = 5

// Shrink narrows the master pane of a master-stack grid.
type Shrink struct{}

func (Shrink) MessageName() string { return "shrink" }

// Expand widens the master pane of a master-stack grid.
type Expand struct{}

func (Expand) MessageName() string { return "expand" }

// Grid arranges windows with one of the configured grid modes.
type Grid struct {
	name   string
	layout config.Layout
	gap    int
}

var _ layout.Layout = (*Grid)(nil)

// NewGrid builds a grid for a named configured layout.
func NewGrid(name string, l config.Layout, gapSize int) *Grid {
	return &Grid{name: name, layout: l, gap: gapSize}
}

// Name returns the configured layout name.
func (g *Grid) Name() string { return g.name }

// Config returns a copy of the layout settings in effect.
func (g *Grid) Config() config.Layout { return g.layout }

func (g *Grid) Arrange(area platform.Rect, windows []platform.WindowID) ([]layout.Placement, layout.Layout, error) {
	if len(windows) == 0 {
		return nil, nil, nil
	}

	region := ApplyRegion(area, g.layout.TileRegion)
	positions, err := Positions(len(windows), region, &g.layout, g.gap)
	if err != nil {
		return nil, nil, fmt.Errorf("layout %s: %w", g.name, err)
	}

	placements := make([]layout.Placement, 0, len(positions))
	for i, pos := range positions {
		if i >= len(windows) {
			break
		}
		placements = append(placements, layout.Placement{Window: windows[i], Bounds: pos})
	}
	return placements, nil, nil
}

// ArrangeEmpty places nothing.
func (g *Grid) ArrangeEmpty(platform.Rect) ([]layout.Placement, layout.Layout, error) {
	return nil, nil, nil
}

func (g *Grid) HandleMessage(msg layout.Message) layout.Layout {
	if g.layout.Mode != config.LayoutModeMasterStack {
		return nil
	}

	var delta int
	switch msg.(type) {
	case Shrink:
		delta = -MasterStep
	case Expand:
		delta = MasterStep
	default:
		return nil
	}

	percent := g.layout.MasterStack.MasterWidthPercent + delta
	percent = max(config.MinMasterWidthPercent, min(config.MaxMasterWidthPercent, percent))
	if percent == g.layout.MasterStack.MasterWidthPercent {
		return nil
	}

	next := *g
	next.layout.MasterStack.MasterWidthPercent = percent
	return &next
}

func (g *Grid) Description() string {
	if g.layout.Mode == config.LayoutModeMasterStack {
		return fmt.Sprintf("%s (%s %d%%)", g.name, g.layout.Mode, g.layout.MasterStack.MasterWidthPercent)
	}
	return fmt.Sprintf("%s (%s)", g.name, g.layout.Mode)
}
