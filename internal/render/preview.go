// Package render draws terminal output for the CLI: status lines and ASCII
// previews of a layout against the current docks.
package render

import (
	"fmt"
	"strings"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/platform"
	"github.com/1broseidon/dockgap/internal/tiling"
)

const reservedCell = '░'

// staticGaps serves a fixed strut set as a reduction source.
type staticGaps struct {
	reduce docks.Reduction
}

func (g staticGaps) ComputeReduction() func(platform.Rect) platform.Rect {
	return g.reduce
}

// PreviewInput describes what to draw.
type PreviewInput struct {
	Name      string
	Layout    config.Layout
	GapSize   int
	Screen    platform.Rect
	Struts    []docks.Strut
	Avoid     bool
	TileCount int
	Width     int
	Height    int
}

// Preview arranges TileCount placeholder windows with the layout wrapped in
// strut avoidance and draws the result. Space reserved by struts is shaded.
func Preview(in PreviewInput) ([]string, error) {
	if in.Width < 5 || in.Height < 3 {
		return emptyCanvas(in.Width, in.Height), nil
	}
	if in.Screen.Width < 1 || in.Screen.Height < 1 {
		return nil, fmt.Errorf("invalid screen %dx%d", in.Screen.Width, in.Screen.Height)
	}

	reduce := docks.Reduce(in.Screen, in.Struts)
	var l layout.Layout = layout.NewAvoidStruts(staticGaps{reduce: reduce}, tiling.NewGrid(in.Name, in.Layout, in.GapSize))
	if !in.Avoid {
		l = l.HandleMessage(layout.ToggleStruts{})
	}

	ids := make([]platform.WindowID, max(in.TileCount, 0))
	for i := range ids {
		ids[i] = platform.WindowID(i + 1)
	}
	placements, _, err := l.Arrange(in.Screen, ids)
	if err != nil {
		return nil, err
	}

	canvas := make([][]rune, in.Height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", in.Width))
	}

	c := cells{screen: in.Screen, w: in.Width, h: in.Height}
	shadeReserved(canvas, c, reduce(in.Screen))
	for i, p := range placements {
		drawTile(canvas, c, p.Bounds, i+1)
	}
	drawBorder(canvas, in.Width, in.Height)

	lines := make([]string, in.Height)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines, nil
}

// cells maps screen pixels onto canvas cells.
type cells struct {
	screen platform.Rect
	w, h   int
}

func (c cells) x(px int) int { return (px - c.screen.X) * c.w / c.screen.Width }
func (c cells) y(py int) int { return (py - c.screen.Y) * c.h / c.screen.Height }

func shadeReserved(canvas [][]rune, c cells, usable platform.Rect) {
	x1, y1 := c.x(usable.X), c.y(usable.Y)
	x2, y2 := c.x(usable.X+usable.Width), c.y(usable.Y+usable.Height)
	for y := 1; y < c.h-1; y++ {
		for x := 1; x < c.w-1; x++ {
			if x < x1 || x >= x2 || y < y1 || y >= y2 {
				canvas[y][x] = reservedCell
			}
		}
	}
}

func drawTile(canvas [][]rune, c cells, rect platform.Rect, num int) {
	x1, y1 := c.x(rect.X), c.y(rect.Y)
	x2, y2 := c.x(rect.X+rect.Width)-1, c.y(rect.Y+rect.Height)-1

	// Clamp to canvas bounds
	x1 = max(x1, 1)
	y1 = max(y1, 1)
	x2 = min(x2, c.w-2)
	y2 = min(y2, c.h-2)

	// Need at least 2x2 for a tile
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			canvas[y][x] = ' '
		}
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	// Draw tile number in center
	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	lines := make([]string, max(height, 0))
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
