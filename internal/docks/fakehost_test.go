package docks

import (
	"errors"

	"github.com/1broseidon/dockgap/internal/platform"
)

const testRoot platform.WindowID = 1

type fakeHost struct {
	atoms       map[string]platform.Atom
	props       map[platform.WindowID]map[platform.Atom][]int
	children    []platform.WindowID
	childrenErr error
	screen      platform.Rect
	screenErr   error
	queries     int
}

func newFakeHost(screen platform.Rect) *fakeHost {
	return &fakeHost{
		atoms:  make(map[string]platform.Atom),
		props:  make(map[platform.WindowID]map[platform.Atom][]int),
		screen: screen,
	}
}

func (h *fakeHost) ResolveAtom(name string) (platform.Atom, error) {
	if atom, ok := h.atoms[name]; ok {
		return atom, nil
	}
	atom := platform.Atom(100 + len(h.atoms))
	h.atoms[name] = atom
	return atom, nil
}

func (h *fakeHost) atom(name string) platform.Atom {
	atom, _ := h.ResolveAtom(name)
	return atom
}

func (h *fakeHost) set(w platform.WindowID, name string, values ...int) {
	if h.props[w] == nil {
		h.props[w] = make(map[platform.Atom][]int)
	}
	h.props[w][h.atom(name)] = values
}

// addWindow registers w as a child of the root.
func (h *fakeHost) addWindow(w platform.WindowID) {
	h.children = append(h.children, w)
}

func (h *fakeHost) WindowProperty(w platform.WindowID, prop platform.Atom) ([]int, bool) {
	values, ok := h.props[w][prop]
	return values, ok
}

func (h *fakeHost) RootWindow() platform.WindowID { return testRoot }

func (h *fakeHost) TopLevelWindows(root platform.WindowID) ([]platform.WindowID, error) {
	h.queries++
	if root != testRoot {
		return nil, errors.New("unknown root")
	}
	return append([]platform.WindowID(nil), h.children...), h.childrenErr
}

func (h *fakeHost) WindowGeometry(w platform.WindowID) (platform.Rect, error) {
	if w != testRoot {
		return platform.Rect{}, errors.New("geometry only faked for root")
	}
	return h.screen, h.screenErr
}

type failingAtomHost struct {
	*fakeHost
}

func (failingAtomHost) ResolveAtom(string) (platform.Atom, error) {
	return 0, errors.New("no connection")
}
