package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

const eps = 1e-4

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < eps
}

func TestNewOrbitCamera_DefaultViewpoint(t *testing.T) {
	c := NewOrbitCamera()
	if got := c.Position(); !near(got, DefaultEye) {
		t.Errorf("Position() = %v, want %v", got, DefaultEye)
	}

	// The center sits straight ahead of the camera.
	inView := c.ViewMatrix().Mul4x1(DefaultCenter.Vec4(1)).Vec3()
	want := mgl32.Vec3{0, 0, -DefaultEye.Len()}
	if !near(inView, want) {
		t.Errorf("center in view space = %v, want %v", inView, want)
	}
}

func TestOrbitCamera_HandleDrag(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want clamp to %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %v, want clamp to %v", c.Pitch, c.MinPitch)
	}

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	if got, want := c.Yaw, yaw-100*c.DragSensitivity; math.Abs(float64(got-want)) > eps {
		t.Errorf("Yaw = %v, want %v", got, want)
	}
}

func TestOrbitCamera_HandleZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  func(c *OrbitCamera) float32
	}{
		{"zoom in clamps", 1e3, func(c *OrbitCamera) float32 { return c.MinDistance }},
		{"zoom out clamps", -1e6, func(c *OrbitCamera) float32 { return c.MaxDistance }},
		{"small step", 1, func(c *OrbitCamera) float32 { return 20 * 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Distance = 20
			c.HandleZoom(tt.delta)
			if want := tt.want(c); math.Abs(float64(c.Distance-want)) > eps {
				t.Errorf("Distance = %v, want %v", c.Distance, want)
			}
		})
	}
}

func TestOrbitCamera_HandleMovement(t *testing.T) {
	c := NewOrbitCamera()
	c.Yaw = 0
	c.Distance = 100
	c.Center = mgl32.Vec3{}

	// Yaw 0 looks toward -Z, so forward moves the center that way.
	c.HandleMovement(1, 0, 0)
	if !near(c.Center, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Center after forward = %v, want (0, 0, -1)", c.Center)
	}
	c.HandleMovement(0, 1, 1)
	if !near(c.Center, mgl32.Vec3{1, 1, -1}) {
		t.Errorf("Center after right+up = %v, want (1, 1, -1)", c.Center)
	}
}

func TestGridBounds(t *testing.T) {
	g := tilemap.NewGrid(3, 2)
	g.At(1, 1).Height = tilemap.Ramp(tilemap.Horizontal, 4, 1)
	g.At(0, 0).Height = tilemap.Flat(2)

	b := GridBounds(g, g.Bounds())
	if b.Min != [3]float32{-0.5, 0, -0.5} || b.Max != [3]float32{2.5, 4, 1.5} {
		t.Errorf("GridBounds(all) = %+v", b)
	}

	b = GridBounds(g, tilemap.SingleTile(tilemap.Pt(0, 0)))
	if b.Min != [3]float32{-0.5, 0, -0.5} || b.Max != [3]float32{0.5, 2, 0.5} {
		t.Errorf("GridBounds((0,0)) = %+v", b)
	}
}

func TestOrbitCamera_Preset(t *testing.T) {
	g := tilemap.NewGrid(9, 5)
	g.At(4, 2).Height = tilemap.Flat(1)

	c := NewOrbitCamera()
	c.Preset(ViewCenter, g, tilemap.TileRange{})
	if !near(c.Center, mgl32.Vec3{4, 0.5, 2}) {
		t.Errorf("center view Center = %v, want (4, 0.5, 2)", c.Center)
	}
	pitch, yaw := defaultAngles()
	if c.Pitch != pitch || c.Yaw != yaw {
		t.Errorf("center view angles = %v, %v; want %v, %v", c.Pitch, c.Yaw, pitch, yaw)
	}

	c.Preset(ViewTopDown, g, tilemap.TileRange{})
	if c.Pitch != c.MaxPitch || c.Yaw != 0 {
		t.Errorf("top-down angles = %v, %v", c.Pitch, c.Yaw)
	}

	c.Preset(ViewSelection, g, tilemap.NewTileRange(tilemap.Pt(7, 3), tilemap.Pt(20, 20)))
	if !near(c.Center, mgl32.Vec3{7.5, 0, 3.5}) {
		t.Errorf("selection view Center = %v, want (7.5, 0, 3.5)", c.Center)
	}

	// A selection outside the map leaves the camera alone.
	before := *c
	c.Preset(ViewSelection, g, tilemap.SingleTile(tilemap.Pt(30, 30)))
	if *c != before {
		t.Error("selection outside the map should not move the camera")
	}
}

func TestParsePresetView(t *testing.T) {
	for v := ViewCenter; v <= ViewSelection; v++ {
		got, ok := ParsePresetView(v.String())
		if !ok || got != v {
			t.Errorf("ParsePresetView(%q) = %v, %v", v.String(), got, ok)
		}
	}
	if _, ok := ParsePresetView("isometric"); ok {
		t.Error("ParsePresetView(isometric) should fail")
	}
}
