// Package camera provides the orbiting preview camera for map viewports.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Default viewpoint of a freshly opened map.
var (
	DefaultEye    = mgl32.Vec3{-2.5, 4.5, 9}
	DefaultCenter = mgl32.Vec3{}
)

// PresetView is a canned camera placement.
type PresetView uint8

// Preset views.
const (
	ViewCenter PresetView = iota
	ViewTopDown
	ViewSelection
)

// String implements fmt.Stringer.
func (v PresetView) String() string {
	switch v {
	case ViewCenter:
		return "center"
	case ViewTopDown:
		return "top-down"
	case ViewSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// ParsePresetView is the inverse of PresetView.String.
func ParsePresetView(s string) (PresetView, bool) {
	for v := ViewCenter; v <= ViewSelection; v++ {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around Y, 0 looks toward -Z

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates a camera at the default viewpoint.
func NewOrbitCamera() *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        0.05,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            mgl32.DegToRad(45),
		Near:            0.1,
		Far:             1000,
	}
	c.LookFrom(DefaultEye, DefaultCenter)
	return c
}

// LookFrom places the camera at eye looking at center. Pitch and distance
// are not clamped.
func (c *OrbitCamera) LookFrom(eye, center mgl32.Vec3) {
	off := eye.Sub(center)
	c.Center = center
	c.Distance = off.Len()
	if c.Distance == 0 {
		return
	}
	c.Pitch = float32(gomath.Asin(float64(off.Y() / c.Distance)))
	c.Yaw = float32(gomath.Atan2(float64(off.X()), float64(off.Z())))
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sp, cp := gomath.Sincos(float64(c.Pitch))
	sy, cy := gomath.Sincos(float64(c.Yaw))
	return c.Center.Add(mgl32.Vec3{
		c.Distance * float32(cp*sy),
		c.Distance * float32(sp),
		c.Distance * float32(cp*cy),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective matrix for a viewport of the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *OrbitCamera) ViewProj(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the camera heading.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	sy, cy := gomath.Sincos(float64(c.Yaw))
	dirX, dirZ := float32(sy), float32(cy)
	rightX, rightZ := float32(cy), float32(-sy)

	c.Center = c.Center.Add(mgl32.Vec3{
		(-dirX*forward + rightX*right) * speed,
		up * speed,
		(-dirZ*forward + rightZ*right) * speed,
	})
}

// FitToBounds centers the camera on b and backs off until it fits the view.
func (c *OrbitCamera) FitToBounds(b mapmesh.Bounds) {
	lo, hi := mgl32.Vec3(b.Min), mgl32.Vec3(b.Max)
	c.Center = lo.Add(hi).Mul(0.5)

	radius := hi.Sub(lo).Len() / 2
	dist := radius / float32(gomath.Sin(float64(c.FovY/2)))
	c.Distance = mgl32.Clamp(dist, c.MinDistance, c.MaxDistance)
}

// Preset moves the camera to a canned view of g. sel is only used by ViewSelection
// and is clipped to the grid.
func (c *OrbitCamera) Preset(v PresetView, g *tilemap.Grid, sel tilemap.TileRange) {
	switch v {
	case ViewCenter:
		c.FitToBounds(GridBounds(g, g.Bounds()))
		c.Pitch, c.Yaw = defaultAngles()
	case ViewTopDown:
		c.FitToBounds(GridBounds(g, g.Bounds()))
		c.Pitch, c.Yaw = c.MaxPitch, 0
	case ViewSelection:
		if clipped, ok := sel.Intersect(g.Bounds()); ok {
			c.FitToBounds(GridBounds(g, clipped))
		}
	}
}

func defaultAngles() (pitch, yaw float32) {
	var c OrbitCamera
	c.LookFrom(DefaultEye, DefaultCenter)
	return c.Pitch, c.Yaw
}

// GridBounds returns the box covering the tile columns of r, from the floor
// to the highest tile top.
func GridBounds(g *tilemap.Grid, r tilemap.TileRange) mapmesh.Bounds {
	top := 0.0
	it := r.Iter()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		top = gomath.Max(top, g.At(p.X, p.Y).Height.MaxHeight())
	}
	return mapmesh.Bounds{
		Min: [3]float32{float32(r.Start.X) - 0.5, 0, float32(r.Start.Y) - 0.5},
		Max: [3]float32{float32(r.End.X) + 0.5, float32(top), float32(r.End.Y) + 0.5},
	}
}
