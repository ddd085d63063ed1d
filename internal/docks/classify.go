package docks

import "github.com/1broseidon/dockgap/internal/platform"

// Classifier recognises dock and desktop windows, which are shown but never
// managed.
type Classifier struct {
	host       platform.Host
	windowType platform.Atom
	dock       platform.Atom
	desktop    platform.Atom
}

// NewClassifier resolves the window-type atoms on host.
func NewClassifier(host platform.Host) (*Classifier, error) {
	atoms := make([]platform.Atom, 3)
	for i, name := range []string{AtomWindowType, AtomWindowTypeDock, AtomWindowTypeDesktop} {
		atom, err := host.ResolveAtom(name)
		if err != nil {
			return nil, err
		}
		atoms[i] = atom
	}
	return &Classifier{
		host:       host,
		windowType: atoms[0],
		dock:       atoms[1],
		desktop:    atoms[2],
	}, nil
}

// IsDock reports whether the window declares exactly one window type and that
// type is DOCK or DESKTOP.
func (c *Classifier) IsDock(windowID platform.WindowID) bool {
	values, ok := c.host.WindowProperty(windowID, c.windowType)
	if !ok || len(values) != 1 {
		return false
	}
	t := platform.Atom(values[0])
	return t == c.dock || t == c.desktop
}

// Manageable filters out dock windows.
func (c *Classifier) Manageable(windows []platform.Window) []platform.Window {
	managed := make([]platform.Window, 0, len(windows))
	for _, w := range windows {
		if c.IsDock(w.ID) {
			continue
		}
		managed = append(managed, w)
	}
	return managed
}
