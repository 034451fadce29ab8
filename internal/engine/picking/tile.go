package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Hit is the result of a successful tile pick.
type Hit struct {
	Tile     tilemap.Point
	Distance float32
	Position mgl32.Vec3
	Void     bool // the ray reached the floor of an empty cell
}

// TileBox returns the column occupied by the tile at (x, y), from the floor
// up to its highest top. Ramps are picked by this box, not their slope.
func TileBox(g *tilemap.Grid, x, y int) AABB {
	h := g.At(x, y).Height
	xf, zf := float32(x), float32(y)
	return NewAABB(
		mgl32.Vec3{xf - 0.5, float32(gomath.Min(0, h.MinHeight())), zf - 0.5},
		mgl32.Vec3{xf + 0.5, float32(h.MaxHeight()), zf + 0.5},
	)
}

// PickTile returns the nearest tile hit by r. Solid tiles are hit on their
// column; empty cells are hit where the ray crosses the floor plane.
func PickTile(g *tilemap.Grid, r Ray) (Hit, bool) {
	best := Hit{Distance: float32(gomath.MaxFloat32)}
	found := false

	for y := range g.Rows() {
		for x := range g.Cols() {
			if g.At(x, y).IsVoid() {
				continue
			}
			t, ok := r.IntersectAABB(TileBox(g, x, y))
			if !ok || t >= best.Distance {
				continue
			}
			best = Hit{Tile: tilemap.Pt(x, y), Distance: t, Position: r.At(t)}
			found = true
		}
	}

	if fx, fz, t, ok := r.IntersectPlaneY(0); ok && t < best.Distance {
		p := tilemap.Pt(int(gomath.Floor(float64(fx)+0.5)), int(gomath.Floor(float64(fz)+0.5)))
		if tile, in := g.Get(p.X, p.Y); in && tile.IsVoid() {
			best = Hit{Tile: p, Distance: t, Position: r.At(t), Void: true}
			found = true
		}
	}
	return best, found
}
