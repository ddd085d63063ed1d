// Package docks reads the screen-edge reservations ("struts") that panels and
// status bars declare and turns them into a reduction of the usable screen.
package docks

import (
	"fmt"
	"math"

	"github.com/1broseidon/dockgap/internal/platform"
)

// Property and type names read from client windows.
const (
	AtomWindowType        = "_NET_WM_WINDOW_TYPE"
	AtomWindowTypeDock    = "_NET_WM_WINDOW_TYPE_DOCK"
	AtomWindowTypeDesktop = "_NET_WM_WINDOW_TYPE_DESKTOP"
	AtomStrutPartial      = "_NET_WM_STRUT_PARTIAL"
	AtomStrut             = "_NET_WM_STRUT"
)

// Bounds used for legacy struts, which carry no range and therefore reserve
// the whole length of their edge.
const (
	MinCoord = math.MinInt
	MaxCoord = math.MaxInt
)

// Side is the screen edge a strut is anchored to.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide is the inverse of Side.String.
func ParseSide(name string) (Side, error) {
	for _, s := range []Side{Left, Right, Top, Bottom} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

// Strut reserves Thickness pixels inward from Side. RangeStart..RangeEnd is
// the span along the perpendicular axis the reservation applies to (the Y
// axis for Left/Right, the X axis for Top/Bottom).
type Strut struct {
	Side       Side
	Thickness  int
	RangeStart int
	RangeEnd   int
}

// ParsePartial decodes a 12-value _NET_WM_STRUT_PARTIAL payload:
// left, right, top, bottom thickness followed by the start/end pairs for
// left, right, top and bottom. Zero-thickness edges are dropped. Any other
// length yields no struts.
func ParsePartial(values []int) []Strut {
	if len(values) != 12 {
		return nil
	}

	var struts []Strut
	for i, side := range []Side{Left, Right, Top, Bottom} {
		thickness := values[i]
		if thickness == 0 {
			continue
		}
		struts = append(struts, Strut{
			Side:       side,
			Thickness:  thickness,
			RangeStart: values[4+2*i],
			RangeEnd:   values[5+2*i],
		})
	}
	return struts
}

// ParseLegacy decodes a 4-value _NET_WM_STRUT payload by padding it to the
// partial form with full-span ranges.
func ParseLegacy(values []int) []Strut {
	if len(values) != 4 {
		return nil
	}

	padded := make([]int, 0, 12)
	padded = append(padded, values...)
	for i := 0; i < 4; i++ {
		padded = append(padded, MinCoord, MaxCoord)
	}
	return ParsePartial(padded)
}

// Extractor reads struts from window properties.
type Extractor struct {
	host    platform.Host
	partial platform.Atom
	legacy  platform.Atom
}

// NewExtractor resolves the strut property atoms on host.
func NewExtractor(host platform.Host) (*Extractor, error) {
	partial, err := host.ResolveAtom(AtomStrutPartial)
	if err != nil {
		return nil, err
	}
	legacy, err := host.ResolveAtom(AtomStrut)
	if err != nil {
		return nil, err
	}
	return &Extractor{host: host, partial: partial, legacy: legacy}, nil
}

// Struts returns the reservations declared by windowID. The partial form wins
// over the legacy form; a window declaring neither, or a malformed payload,
// contributes nothing.
func (e *Extractor) Struts(windowID platform.WindowID) []Strut {
	if values, ok := e.host.WindowProperty(windowID, e.partial); ok {
		return ParsePartial(values)
	}
	if values, ok := e.host.WindowProperty(windowID, e.legacy); ok {
		return ParseLegacy(values)
	}
	return nil
}
