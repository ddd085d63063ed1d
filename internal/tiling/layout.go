package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/platform"
)

// Rect is a window position and size in root coordinates.
type Rect = platform.Rect

// AutoGrid picks the grid for n windows: ceil(sqrt(n)) columns and as many
// rows as needed to hold them.
func AutoGrid(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	return ceilDiv(n, cols), cols
}

// Positions computes the window rectangles for n windows in area. Layouts
// with a fixed capacity return fewer positions than windows.
func Positions(n int, area Rect, l *config.Layout, gap int) ([]Rect, error) {
	if n == 0 {
		return nil, nil
	}

	switch l.Mode {
	case config.LayoutModeAuto:
		rows, cols := AutoGrid(n)
		return gridPositions(n, area, rows, cols, gap, l, l.FlexibleLastRow)
	case config.LayoutModeFixed:
		rows, cols := l.FixedGrid.Rows, l.FixedGrid.Cols
		return gridPositions(min(n, rows*cols), area, rows, cols, gap, l, false)
	case config.LayoutModeVertical:
		return gridPositions(n, area, n, 1, gap, l, false)
	case config.LayoutModeHorizontal:
		return gridPositions(n, area, 1, n, gap, l, false)
	case config.LayoutModeMasterStack:
		return masterStackPositions(n, area, l.MasterStack, gap)
	case config.LayoutModeMonocle:
		return monoclePositions(n, area, gap)
	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", l.Mode)
	}
}

// slots divides an area into equal cells with gap between cells and around
// the edge.
type slots struct {
	origin        Rect
	cols          int
	gap           int
	width, height int
}

func newSlots(area Rect, rows, cols, gap int) (slots, error) {
	if rows < 1 || cols < 1 {
		return slots{}, fmt.Errorf("invalid grid dimensions: rows=%d cols=%d", rows, cols)
	}
	s := slots{
		origin: area,
		cols:   cols,
		gap:    gap,
		width:  (area.Width - (cols+1)*gap) / cols,
		height: (area.Height - (rows+1)*gap) / rows,
	}
	if s.width <= 0 || s.height <= 0 {
		return slots{}, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d (slot=%dx%d)",
			area.Width, area.Height, rows, cols, gap, s.width, s.height,
		)
	}
	return s, nil
}

func (s slots) cell(row, col int) Rect {
	return Rect{
		X:      s.origin.X + s.gap + col*(s.width+s.gap),
		Y:      s.origin.Y + s.gap + row*(s.height+s.gap),
		Width:  s.width,
		Height: s.height,
	}
}

// fit caps a slot at the max window size, centred in the slot. Zero means
// no limit.
func fit(slot Rect, maxWidth, maxHeight int) Rect {
	if maxWidth > 0 && slot.Width > maxWidth {
		slot.X += (slot.Width - maxWidth) / 2
		slot.Width = maxWidth
	}
	if maxHeight > 0 && slot.Height > maxHeight {
		slot.Y += (slot.Height - maxHeight) / 2
		slot.Height = maxHeight
	}
	return slot
}

// gridPositions fills a rows x cols grid row by row. With stretch set, a
// partial last row is spread over the full width.
func gridPositions(n int, area Rect, rows, cols, gap int, l *config.Layout, stretch bool) ([]Rect, error) {
	grid, err := newSlots(area, rows, cols, gap)
	if err != nil {
		return nil, err
	}

	lastRow := rows - 1
	inLastRow := n - lastRow*cols
	stretch = stretch && inLastRow > 0 && inLastRow < cols
	var tail slots
	if stretch {
		if tail, err = newSlots(area, 1, inLastRow, gap); err != nil {
			return nil, err
		}
	}

	positions := make([]Rect, n)
	for i := range positions {
		row, col := i/cols, i%cols
		cell := grid.cell(row, col)
		if stretch && row == lastRow {
			wide := tail.cell(0, col)
			cell.X, cell.Width = wide.X, wide.Width
		}
		positions[i] = fit(cell, l.MaxWindowWidth, l.MaxWindowHeight)
	}
	return positions, nil
}

// masterStackPositions puts the first window in a master pane of
// MasterWidthPercent on the left and grids the rest on the right, at most
// MaxStackRows x MaxStackCols of them.
func masterStackPositions(n int, area Rect, ms config.MasterStack, gap int) ([]Rect, error) {
	masterWidth := area.Width*ms.MasterWidthPercent/100 - gap
	master, err := newSlots(Rect{X: area.X, Y: area.Y, Width: masterWidth + 2*gap, Height: area.Height}, 1, 1, gap)
	if err != nil {
		return nil, fmt.Errorf("master pane: %w", err)
	}
	positions := []Rect{master.cell(0, 0)}

	stacked := n - 1
	if stacked == 0 {
		return positions, nil
	}
	cols := max(1, min(ceilDiv(stacked, ms.MaxStackRows), ms.MaxStackCols))
	rows := min(ceilDiv(stacked, cols), ms.MaxStackRows)

	stackArea := Rect{
		X:      area.X + masterWidth + gap,
		Y:      area.Y,
		Width:  area.Width - masterWidth - gap,
		Height: area.Height,
	}
	stack, err := newSlots(stackArea, rows, cols, gap)
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}
	for i := range min(stacked, rows*cols) {
		positions = append(positions, stack.cell(i/cols, i%cols))
	}
	return positions, nil
}

// monoclePositions stacks every window over the whole area, inset by gap.
func monoclePositions(n int, area Rect, gap int) ([]Rect, error) {
	whole, err := newSlots(area, 1, 1, gap)
	if err != nil {
		return nil, fmt.Errorf("monocle: %w", err)
	}
	positions := make([]Rect, n)
	for i := range positions {
		positions[i] = whole.cell(0, 0)
	}
	return positions, nil
}

// ApplyRegion narrows area to a tile region. The result is never smaller
// than 1x1.
func ApplyRegion(area Rect, region config.TileRegion) Rect {
	x, y, w, h := 0, 0, 100, 100
	switch region.Type {
	case config.RegionLeftHalf:
		w = 50
	case config.RegionRightHalf:
		x, w = 50, 50
	case config.RegionTopHalf:
		h = 50
	case config.RegionBottomHalf:
		y, h = 50, 50
	case config.RegionCustom:
		x, y, w, h = region.XPercent, region.YPercent, region.WidthPercent, region.HeightPercent
	}
	return Rect{
		X:      area.X + area.Width*x/100,
		Y:      area.Y + area.Height*y/100,
		Width:  max(area.Width*w/100, 1),
		Height: max(area.Height*h/100, 1),
	}
}

func ceilDiv(a, b int) int {
	if b < 1 {
		return a
	}
	return (a + b - 1) / b
}
