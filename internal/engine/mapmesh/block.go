package mapmesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Block and trim dimensions.
const (
	BlockSize  float32 = 1.0 / 8.0
	blockHalf          = BlockSize / 2
	TrimSize           = BlockSize / 2
	trimHalf           = TrimSize / 2
)

// cuboid is a box in world space, rotated about its centre.
type cuboid struct {
	Size     mgl32.Vec3
	Center   mgl32.Vec3
	Rotation mgl32.Quat
}

func axisBox(size, center mgl32.Vec3) cuboid {
	return cuboid{Size: size, Center: center, Rotation: mgl32.QuatIdent()}
}

// planBlocks returns the barrier blocks drawn on the impassible edges of the
// flat tile at (x, y).
//
// A block sits on the edge when it is higher than the neighbor. West and north
// edges also get a block, centred on the shared border, when both tiles are
// level; east and south edges never do, so a level pair is drawn once.
func planBlocks(g *tilemap.Grid, x, y int) []cuboid {
	tile := g.At(x, y)
	if tile.IsRamp() {
		return nil
	}
	xf := float32(x)
	yf := float32(y)
	center := tile.Height.CenterHeight()
	h := float32(center) + blockHalf

	var out []cuboid
	if tile.Connections.West.Impassible() {
		if n, ok := g.Neighbor(x, y, tilemap.West); ok && !n.IsRamp() {
			nc := n.Height.CenterHeight()
			if center > nc {
				out = append(out, axisBox(mgl32.Vec3{BlockSize, BlockSize, 1}, mgl32.Vec3{xf - 0.5 + blockHalf, h, yf}))
			} else if center == nc {
				out = append(out, axisBox(mgl32.Vec3{BlockSize, BlockSize, 1}, mgl32.Vec3{xf - 0.5, h, yf}))
			}
		}
	}
	if tile.Connections.East.Impassible() {
		if n, ok := g.Neighbor(x, y, tilemap.East); ok && center > n.Height.CenterHeight() {
			out = append(out, axisBox(mgl32.Vec3{BlockSize, BlockSize, 1}, mgl32.Vec3{xf + 0.5 - blockHalf, h, yf}))
		}
	}
	if tile.Connections.North.Impassible() {
		if n, ok := g.Neighbor(x, y, tilemap.North); ok && !n.IsRamp() {
			nc := n.Height.CenterHeight()
			if center > nc {
				out = append(out, axisBox(mgl32.Vec3{1, BlockSize, BlockSize}, mgl32.Vec3{xf, h, yf - 0.5 + blockHalf}))
			} else if center == nc {
				out = append(out, axisBox(mgl32.Vec3{1, BlockSize, BlockSize}, mgl32.Vec3{xf, h, yf - 0.5}))
			}
		}
	}
	if tile.Connections.South.Impassible() {
		if n, ok := g.Neighbor(x, y, tilemap.South); ok && center > n.Height.CenterHeight() {
			out = append(out, axisBox(mgl32.Vec3{1, BlockSize, BlockSize}, mgl32.Vec3{xf, h, yf + 0.5 - blockHalf}))
		}
	}
	return out
}

func (s *State) pushBoxes(boxes []cuboid) {
	for _, b := range boxes {
		s.pushCuboid(b.Size, b.Center, b.Rotation)
	}
}
