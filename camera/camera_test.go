package camera

import (
	"math"
	"testing"
)

func testCamera() *Camera {
	return New(800, 600, 100000, 100000)
}

func TestNewFitsWorldOnScreen(t *testing.T) {
	c := testCamera()

	if c.X != 50000 || c.Y != 50000 {
		t.Errorf("camera center = (%v, %v), want world center", c.X, c.Y)
	}
	// Fit zoom is the smaller of the two axis ratios.
	if want := 600.0 / 100000; c.Zoom != want {
		t.Errorf("Zoom = %v, want fit zoom %v", c.Zoom, want)
	}
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	if minX > 0 || minY > 0 || maxX < 100000 || maxY < 100000 {
		t.Errorf("visible bounds (%v,%v)-(%v,%v) do not cover the world", minX, minY, maxX, maxY)
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	c := testCamera()
	c.SetZoom(1.0)
	c.CenterOn(42000, 31000)

	points := [][2]float64{{0, 0}, {400, 300}, {799, 599}, {123, 456}}
	for _, p := range points {
		wx, wy := c.ScreenToWorld(p[0], p[1])
		sx, sy := c.WorldToScreen(wx, wy)
		if math.Abs(sx-p[0]) > 1e-9 || math.Abs(sy-p[1]) > 1e-9 {
			t.Errorf("round trip of (%v, %v) = (%v, %v)", p[0], p[1], sx, sy)
		}
	}
}

func TestWorldToScreenCentersCamera(t *testing.T) {
	c := testCamera()
	c.SetZoom(2.0)
	c.CenterOn(30000, 40000)

	sx, sy := c.WorldToScreen(30000, 40000)
	if sx != 400 || sy != 300 {
		t.Errorf("camera center maps to (%v, %v), want viewport center (400, 300)", sx, sy)
	}
}

func TestPanClampsAtWorldEdge(t *testing.T) {
	c := testCamera()
	c.SetZoom(1.0)

	c.Pan(-1e9, -1e9)

	// At zoom 1 the half view is 400x300 px = 400x300 cm.
	if c.X != 400 || c.Y != 300 {
		t.Errorf("camera center after pan = (%v, %v), want clamped (400, 300)", c.X, c.Y)
	}
	minX, minY, _, _ := c.VisibleWorldBounds()
	if minX < 0 || minY < 0 {
		t.Errorf("view escaped the world: min (%v, %v)", minX, minY)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	c := testCamera()
	c.SetZoom(1.0)

	const sx, sy = 600.0, 450.0
	wx, wy := c.ScreenToWorld(sx, sy)

	c.ZoomAt(2.0, sx, sy)

	nx, ny := c.ScreenToWorld(sx, sy)
	if math.Abs(nx-wx) > 1e-6 || math.Abs(ny-wy) > 1e-6 {
		t.Errorf("point under cursor moved from (%v, %v) to (%v, %v)", wx, wy, nx, ny)
	}
}

func TestSetZoomClamps(t *testing.T) {
	c := testCamera()

	c.SetZoom(1000)
	if c.Zoom != c.MaxZoom {
		t.Errorf("Zoom = %v, want clamped to MaxZoom %v", c.Zoom, c.MaxZoom)
	}
	c.SetZoom(1e-9)
	if c.Zoom != c.MinZoom {
		t.Errorf("Zoom = %v, want clamped to MinZoom %v", c.Zoom, c.MinZoom)
	}
}

func TestResizeRaisesZoomFloor(t *testing.T) {
	c := testCamera()
	// Fully zoomed out; a larger viewport needs more zoom to stay within
	// the world.
	c.Resize(1600, 1200)

	if want := 1200.0 / 100000; c.MinZoom != want {
		t.Errorf("MinZoom = %v, want %v", c.MinZoom, want)
	}
	if c.Zoom < c.MinZoom {
		t.Errorf("Zoom = %v below new floor %v", c.Zoom, c.MinZoom)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c := testCamera()
	c.SetZoom(5)
	c.CenterOn(1000, 1000)

	c.Reset()

	if c.X != 50000 || c.Y != 50000 || c.Zoom != c.MinZoom {
		t.Errorf("after Reset: center (%v, %v) zoom %v", c.X, c.Y, c.Zoom)
	}
}
