package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/ipc"
	"github.com/1broseidon/dockgap/internal/platform"
)

// parseStrutSpec parses "side:px" or "side:px:start:end". Without a range the
// strut covers its whole edge.
func parseStrutSpec(spec string) (docks.Strut, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 && len(parts) != 4 {
		return docks.Strut{}, fmt.Errorf("invalid strut %q (want side:px or side:px:start:end)", spec)
	}

	side, err := docks.ParseSide(parts[0])
	if err != nil {
		return docks.Strut{}, fmt.Errorf("invalid strut %q: %w", spec, err)
	}
	nums := make([]int, 0, 3)
	for _, p := range parts[1:] {
		n, err := strconv.Atoi(p)
		if err != nil {
			return docks.Strut{}, fmt.Errorf("invalid strut %q: %w", spec, err)
		}
		nums = append(nums, n)
	}
	if nums[0] < 1 {
		return docks.Strut{}, fmt.Errorf("invalid strut %q: thickness must be > 0", spec)
	}

	s := docks.Strut{Side: side, Thickness: nums[0], RangeStart: docks.MinCoord, RangeEnd: docks.MaxCoord}
	if len(nums) == 3 {
		s.RangeStart, s.RangeEnd = nums[1], nums[2]
	}
	return s, nil
}

// parseScreenSize parses "WIDTHxHEIGHT" into a screen at the origin.
func parseScreenSize(spec string) (platform.Rect, error) {
	w, h, ok := strings.Cut(strings.ToLower(spec), "x")
	if !ok {
		return platform.Rect{}, fmt.Errorf("invalid screen size %q (want WIDTHxHEIGHT)", spec)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return platform.Rect{}, fmt.Errorf("invalid screen width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return platform.Rect{}, fmt.Errorf("invalid screen height %q: %w", h, err)
	}
	if width < 1 || height < 1 {
		return platform.Rect{}, fmt.Errorf("invalid screen size %q", spec)
	}
	return platform.Rect{Width: width, Height: height}, nil
}

// strutsFromData converts a GET_STRUTS reply back into struts.
func strutsFromData(data *ipc.StrutsData) (platform.Rect, []docks.Strut, error) {
	screen := platform.Rect{
		X:      data.Screen.X,
		Y:      data.Screen.Y,
		Width:  data.Screen.Width,
		Height: data.Screen.Height,
	}
	struts := make([]docks.Strut, 0, len(data.Struts))
	for _, info := range data.Struts {
		side, err := docks.ParseSide(info.Side)
		if err != nil {
			return platform.Rect{}, nil, err
		}
		struts = append(struts, docks.Strut{
			Side:       side,
			Thickness:  info.Thickness,
			RangeStart: info.RangeStart,
			RangeEnd:   info.RangeEnd,
		})
	}
	return screen, struts, nil
}

// strutFlags collects repeated --strut values.
type strutFlags []docks.Strut

func (f *strutFlags) String() string {
	parts := make([]string, len(*f))
	for i, s := range *f {
		parts[i] = fmt.Sprintf("%s:%d", s.Side, s.Thickness)
	}
	return strings.Join(parts, ",")
}

func (f *strutFlags) Set(value string) error {
	s, err := parseStrutSpec(value)
	if err != nil {
		return err
	}
	*f = append(*f, s)
	return nil
}
