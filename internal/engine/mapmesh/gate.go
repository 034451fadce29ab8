package mapmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Key gate placement.
const (
	KeyGateScale float32 = 10.0 / 16.0
	keyGateInset float32 = 0.4375
)

// placeGates returns the key gate transforms for locked connections between
// the tile at (x, y) and its west and north neighbors. A gate needs both
// sides of the shared edge locked; east and south edges are placed by the
// neighbor, so each pair yields one gate.
//
// Gates stand on the higher tile, a little in from the edge, and face it.
func placeGates(g *tilemap.Grid, x, y int) []Transform {
	tile := g.At(x, y)
	xf := float32(x)
	yf := float32(y)
	h := float32(tile.Height.CenterHeight())

	var out []Transform
	if n, ok := g.Neighbor(x, y, tilemap.West); ok && tile.Connections.West.Locked() && n.Connections.East.Locked() {
		nh := float32(n.Height.CenterHeight())
		var at mgl32.Vec3
		switch {
		case h > nh:
			at = mgl32.Vec3{xf - keyGateInset, h, yf}
		case h < nh:
			at = mgl32.Vec3{xf - 1 + keyGateInset, nh, yf}
		default:
			at = mgl32.Vec3{xf - 0.5, h, yf}
		}
		angle := float32(math.Pi / 2)
		if h < nh {
			angle = -angle
		}
		out = append(out, gateTransform(at, angle))
	}
	if n, ok := g.Neighbor(x, y, tilemap.North); ok && tile.Connections.North.Locked() && n.Connections.South.Locked() {
		nh := float32(n.Height.CenterHeight())
		var at mgl32.Vec3
		switch {
		case h > nh:
			at = mgl32.Vec3{xf, h, yf - keyGateInset}
		case h < nh:
			at = mgl32.Vec3{xf, nh, yf - 1 + keyGateInset}
		default:
			at = mgl32.Vec3{xf, h, yf - 0.5}
		}
		var angle float32
		if h < nh {
			angle = math.Pi
		}
		out = append(out, gateTransform(at, angle))
	}
	return out
}

func gateTransform(at mgl32.Vec3, yaw float32) Transform {
	return FromTranslation(at).
		WithScale(KeyGateScale).
		WithRotation(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}))
}
