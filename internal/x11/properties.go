package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Atom interns name, using xgbutil's atom cache.
func (c *Connection) Atom(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(c.XUtil, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}

// PropertyInts reads a 32-bit list property of any type. The second return
// value is false when the property is absent or not a 32-bit list.
func (c *Connection) PropertyInts(windowID xproto.Window, atom xproto.Atom) ([]int, bool) {
	reply, err := xproto.GetProperty(
		c.XUtil.Conn(),
		false,
		windowID,
		atom,
		xproto.GetPropertyTypeAny,
		0,
		math.MaxUint32,
	).Reply()
	if err != nil || reply == nil || reply.Format == 0 {
		return nil, false
	}

	nums, err := xprop.PropValNums(reply, nil)
	if err != nil {
		return nil, false
	}

	values := make([]int, len(nums))
	for i, n := range nums {
		values[i] = int(n)
	}
	return values, true
}

// Children lists the direct children of a window, in stacking order.
func (c *Connection) Children(windowID xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree for 0x%x: %w", uint32(windowID), err)
	}
	return tree.Children, nil
}

// Geometry returns a window's position and size relative to its parent.
func (c *Connection) Geometry(windowID xproto.Window) (x, y, width, height int, err error) {
	rect, err := xwindow.New(c.XUtil, windowID).Geometry()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("get geometry for 0x%x: %w", uint32(windowID), err)
	}
	return rect.X(), rect.Y(), rect.Width(), rect.Height(), nil
}

// IsViewable reports whether a window is currently mapped and viewable.
func (c *Connection) IsViewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}
