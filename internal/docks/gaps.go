package docks

import (
	"cmp"
	"log"
	"slices"

	"github.com/1broseidon/dockgap/internal/platform"
)

// Reduction maps a rectangle to the part of it not covered by struts.
type Reduction func(platform.Rect) platform.Rect

// Reduce builds the reduction for struts against screen. Each strut moves its
// edge to at most screen-edge+thickness, so struts on the same edge do not
// add up: the thickest applicable one wins. A strut as thick as the screen
// on its axis reserves nothing and is skipped. Edges never cross, so the
// result has a non-negative size.
func Reduce(screen platform.Rect, struts []Strut) Reduction {
	sc := screen.Corners()
	struts = fitting(screen, struts)
	return func(r platform.Rect) platform.Rect {
		c := r.Corners()
		for i := len(struts) - 1; i >= 0; i-- {
			c = reduceOne(sc, struts[i], c)
		}
		return c.Rect()
	}
}

// fitting drops struts that would leave no room on their axis.
func fitting(screen platform.Rect, struts []Strut) []Strut {
	kept := make([]Strut, 0, len(struts))
	for _, s := range struts {
		extent := screen.Width
		if s.Side == Top || s.Side == Bottom {
			extent = screen.Height
		}
		if s.Thickness >= extent {
			log.Printf("Ignoring %s strut of %dpx on a %dpx screen edge", s.Side, s.Thickness, extent)
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

func reduceOne(screen platform.Corners, s Strut, r platform.Corners) platform.Corners {
	n := s.Thickness
	switch s.Side {
	case Left:
		if overlaps(r.Y0, r.Y1, s.RangeStart, s.RangeEnd) {
			r.X0 = min(max(r.X0, screen.X0+n), r.X1)
		}
	case Right:
		if overlaps(r.Y0, r.Y1, s.RangeStart, s.RangeEnd) {
			r.X1 = max(min(r.X1, screen.X1-n), r.X0)
		}
	case Top:
		if overlaps(r.X0, r.X1, s.RangeStart, s.RangeEnd) {
			r.Y0 = min(max(r.Y0, screen.Y0+n), r.Y1)
		}
	case Bottom:
		if overlaps(r.X0, r.X1, s.RangeStart, s.RangeEnd) {
			r.Y1 = max(min(r.Y1, screen.Y1-n), r.Y0)
		}
	}
	return r
}

// overlaps reports whether the open intervals (a, b) and (lo, hi) share any
// point. Intervals that only touch at an endpoint do not overlap.
func overlaps(a, b, lo, hi int) bool {
	return lo < b && a < hi
}

// Snapshot is the strut state observed at one point in time.
type Snapshot struct {
	Screen platform.Rect
	Struts []Strut
	// Usable is Screen with all struts applied.
	Usable platform.Rect
}

// Equal reports whether two snapshots describe the same screen and struts.
// Strut order follows window stacking and is ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Screen != other.Screen || len(s.Struts) != len(other.Struts) {
		return false
	}
	return slices.Equal(sortedStruts(s.Struts), sortedStruts(other.Struts))
}

func sortedStruts(struts []Strut) []Strut {
	sorted := slices.Clone(struts)
	slices.SortFunc(sorted, func(a, b Strut) int {
		return cmp.Or(
			cmp.Compare(a.Side, b.Side),
			cmp.Compare(a.Thickness, b.Thickness),
			cmp.Compare(a.RangeStart, b.RangeStart),
			cmp.Compare(a.RangeEnd, b.RangeEnd),
		)
	})
	return sorted
}

// Calculator queries the live window tree on every call; nothing is cached
// between calls.
type Calculator struct {
	host      platform.Host
	extractor *Extractor
}

// NewCalculator creates a calculator reading struts from host.
func NewCalculator(host platform.Host) (*Calculator, error) {
	extractor, err := NewExtractor(host)
	if err != nil {
		return nil, err
	}
	return &Calculator{host: host, extractor: extractor}, nil
}

// ComputeReduction returns the reduction for the current struts and screen.
func (c *Calculator) ComputeReduction() func(platform.Rect) platform.Rect {
	snap, err := c.Snapshot()
	if err != nil {
		log.Printf("Strut reduction unavailable, using full area: %v", err)
		return func(r platform.Rect) platform.Rect { return r }
	}
	return Reduce(snap.Screen, snap.Struts)
}

// Snapshot reads every top-level window's struts and the root geometry.
// Struts are read from all windows, not only those classified as docks. A
// failed window listing yields no struts; a failed root geometry read is
// returned as an error.
func (c *Calculator) Snapshot() (Snapshot, error) {
	root := c.host.RootWindow()

	var struts []Strut
	windows, err := c.host.TopLevelWindows(root)
	if err != nil {
		log.Printf("Failed to list top-level windows: %v", err)
	}
	for _, w := range windows {
		struts = append(struts, c.extractor.Struts(w)...)
	}

	screen, err := c.host.WindowGeometry(root)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Screen: screen,
		Struts: struts,
		Usable: Reduce(screen, struts)(screen),
	}, nil
}
