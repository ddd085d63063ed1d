package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Atom is an interned property or type name.
type Atom uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Corners describes a rectangle by its top-left (X0, Y0) and bottom-right
// (X1, Y1) corners. X1 and Y1 are exclusive.
type Corners struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// Corners converts r to corner form.
func (r Rect) Corners() Corners {
	return Corners{
		X0: r.X,
		Y0: r.Y,
		X1: r.X + r.Width,
		Y1: r.Y + r.Height,
	}
}

// Rect converts c back to origin/size form.
func (c Corners) Rect() Rect {
	return Rect{
		X:      c.X0,
		Y:      c.Y0,
		Width:  c.X1 - c.X0,
		Height: c.Y1 - c.Y0,
	}
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID     WindowID
	Class  string
	Title  string
	Bounds Rect
}

// Host is the window-system metadata surface the strut logic reads from.
// Every query is a synchronous round-trip; nothing is cached.
type Host interface {
	// ResolveAtom interns a well-known name.
	ResolveAtom(name string) (Atom, error)
	// WindowProperty reads an integer-list property. A missing property
	// reports ok == false; it is not an error.
	WindowProperty(windowID WindowID, prop Atom) (values []int, ok bool)
	RootWindow() WindowID
	// TopLevelWindows lists the current children of root.
	TopLevelWindows(root WindowID) ([]WindowID, error)
	WindowGeometry(windowID WindowID) (Rect, error)
}

// Backend abstracts the window-system operations the tiler needs.
type Backend interface {
	Host
	ListWindows() ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
}
