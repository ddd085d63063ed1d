//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/dockgap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh
// X11 connection to display (empty means $DISPLAY).
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootXWindow returns the X11 root window ID.
func (b *LinuxBackend) RootXWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// ResolveAtom interns a well-known atom name.
func (b *LinuxBackend) ResolveAtom(name string) (Atom, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	atom, err := conn.Atom(name)
	if err != nil {
		return 0, err
	}
	return Atom(atom), nil
}

// WindowProperty reads a 32-bit list property.
func (b *LinuxBackend) WindowProperty(windowID WindowID, prop Atom) ([]int, bool) {
	conn, err := b.connection()
	if err != nil {
		return nil, false
	}
	return conn.PropertyInts(xproto.Window(windowID), xproto.Atom(prop))
}

// RootWindow returns the root window as a platform ID.
func (b *LinuxBackend) RootWindow() WindowID {
	return WindowID(b.RootXWindow())
}

// TopLevelWindows lists the children of root.
func (b *LinuxBackend) TopLevelWindows(root WindowID) ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	children, err := conn.Children(xproto.Window(root))
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, len(children))
	for i, child := range children {
		ids[i] = WindowID(child)
	}
	return ids, nil
}

// WindowGeometry returns a window's geometry as reported by the server.
func (b *LinuxBackend) WindowGeometry(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	x, y, w, h, err := conn.Geometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// ListWindows lists tileable client windows on the current desktop.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientWindows()
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(conn.XUtil)
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if conn.IsAuxiliaryWindow(windowID) || conn.IsHiddenOrFullscreen(windowID) {
			continue
		}

		if hasCurrentDesktop {
			desktop, err := ewmh.WmDesktopGet(conn.XUtil, windowID)
			if err == nil && desktop != uint(0xFFFFFFFF) && desktop != currentDesktop {
				continue
			}
		}

		rect, ok := b.windowRect(windowID)
		if !ok {
			continue
		}

		windows = append(windows, Window{
			ID:     WindowID(windowID),
			Class:  conn.WindowClass(windowID),
			Title:  conn.WindowTitle(windowID),
			Bounds: rect,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) windowRect(windowID xproto.Window) (Rect, bool) {
	_, _, width, height, err := b.conn.Geometry(windowID)
	if err != nil {
		return Rect{}, false
	}
	x, y, ok := b.conn.RootPosition(windowID)
	if !ok {
		return Rect{}, false
	}
	return Rect{X: x, Y: y, Width: width, Height: height}, true
}
