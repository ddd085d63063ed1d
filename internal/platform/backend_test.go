package platform

import "testing"

func TestRectCornersRoundTrip(t *testing.T) {
	r := Rect{X: 20, Y: 30, Width: 980, Height: 730}
	c := r.Corners()
	if c != (Corners{X0: 20, Y0: 30, X1: 1000, Y1: 760}) {
		t.Fatalf("unexpected corners: %+v", c)
	}
	if got := c.Rect(); got != r {
		t.Fatalf("expected %+v after round trip, got %+v", r, got)
	}
}

func TestRectCornersZeroSize(t *testing.T) {
	r := Rect{X: -5, Y: 7}
	c := r.Corners()
	if c.X0 != c.X1 || c.Y0 != c.Y1 {
		t.Fatalf("expected degenerate corners, got %+v", c)
	}
	if got := c.Rect(); got != r {
		t.Fatalf("expected %+v, got %+v", r, got)
	}
}
