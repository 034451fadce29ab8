package mapmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// planTrims returns the lip strips along the edges of the tile at (x, y) that
// face the map border or a void cell.
//
// Strips on flat tiles are lengthened where they meet a ramp lip or a level
// diagonal tile, so that neighboring strips close their seams. Strips on ramps
// are tilted to the slope.
func planTrims(g *tilemap.Grid, x, y int) []cuboid {
	xf := float32(x)
	yf := float32(y)

	var out []cuboid
	if n, ok := g.Neighbor(x, y, tilemap.West); !ok || n.IsVoid() {
		out = append(out, xAxisTrim(g, x, y, ok, x-1, xf-0.5+trimHalf))
	}
	if n, ok := g.Neighbor(x, y, tilemap.East); !ok || n.IsVoid() {
		out = append(out, xAxisTrim(g, x, y, ok, x+1, xf+0.5-trimHalf))
	}
	if n, ok := g.Neighbor(x, y, tilemap.North); !ok || n.IsVoid() {
		out = append(out, zAxisTrim(g, x, y, yf-0.5+trimHalf))
	}
	if n, ok := g.Neighbor(x, y, tilemap.South); !ok || n.IsVoid() {
		out = append(out, zAxisTrim(g, x, y, yf+0.5-trimHalf))
	}
	return out
}

// rampLipShift returns how far a flat strip must slide and grow to meet the
// lip of an adjacent ramp, or zeros when the ramp does not dip below height.
func rampLipShift(n *tilemap.TileData, height float64) (offset, extension float32) {
	if !n.IsRamp() || n.Height.NegHeight() >= height {
		return 0, 0
	}
	v := float32(math.Sin(math.Atan2(n.Height.NegHeight()-n.Height.PosHeight(), 1) / -2))
	return v * trimHalf, float32(math.Abs(float64(v))) * TrimSize
}

// rampTrimExtension returns the slope angle of a ramp and how much its strip
// grows on each side that meets a level flat strip.
func rampTrimExtension(h tilemap.TileHeight) (angle, v float32) {
	angle = float32(math.Atan2(h.NegHeight()-h.PosHeight(), 1))
	v = float32(math.Abs(math.Sin(float64(-angle/2)))) / 16
	return angle, v
}

func rampTrimLength(h tilemap.TileHeight) float32 {
	d := h.PosHeight() - h.NegHeight()
	return float32(math.Sqrt(d*d + 1))
}

// xAxisTrim builds a strip running along Z at xCoord. diagonal reports whether
// column checkCol exists.
func xAxisTrim(g *tilemap.Grid, x, y int, diagonal bool, checkCol int, xCoord float32) cuboid {
	tile := g.At(x, y)
	yf := float32(y)
	center := float32(tile.Height.CenterHeight())

	if !tile.IsRamp() {
		var offset, extension float32
		height := tile.Height.PosHeight()
		for _, d := range [2]tilemap.Direction{tilemap.North, tilemap.South} {
			if n, ok := g.Neighbor(x, y, d); ok {
				o, e := rampLipShift(n, height)
				offset += o
				extension += e
			}
		}
		if diagonal {
			for _, row := range [2]int{y - 1, y + 1} {
				if n, ok := g.Get(checkCol, row); ok && n.Height == tile.Height {
					offset += trimHalf
					extension += TrimSize
				}
			}
		}
		return axisBox(
			mgl32.Vec3{TrimSize, TrimSize, 1 + extension},
			mgl32.Vec3{xCoord, center + trimHalf, yf - offset},
		)
	}

	angle, v := rampTrimExtension(tile.Height)
	maxHeight := tile.Height.MaxHeight()
	var extension float32
	for _, d := range [2]tilemap.Direction{tilemap.North, tilemap.South} {
		if n, ok := g.Neighbor(x, y, d); ok && n.Height.EqualsFlat(maxHeight) {
			extension += v
		}
	}
	cos, sin := cosSin(angle)
	return cuboid{
		Size: mgl32.Vec3{TrimSize, TrimSize, rampTrimLength(tile.Height) + extension},
		Center: mgl32.Vec3{
			xCoord,
			center + (trimHalf+extension/2)*cos,
			yf + (trimHalf-extension/2)*sin,
		},
		Rotation: mgl32.AnglesToQuat(angle, 0, 0, mgl32.XYZ),
	}
}

// zAxisTrim builds a strip running along X at zCoord.
func zAxisTrim(g *tilemap.Grid, x, y int, zCoord float32) cuboid {
	tile := g.At(x, y)
	xf := float32(x)
	center := float32(tile.Height.CenterHeight())

	if !tile.IsRamp() {
		var offset, extension float32
		height := tile.Height.PosHeight()
		for _, d := range [2]tilemap.Direction{tilemap.West, tilemap.East} {
			if n, ok := g.Neighbor(x, y, d); ok {
				o, e := rampLipShift(n, height)
				offset += o
				extension += e
			}
		}
		return axisBox(
			mgl32.Vec3{1 + extension, TrimSize, TrimSize},
			mgl32.Vec3{xf - offset, center + trimHalf, zCoord},
		)
	}

	angle, v := rampTrimExtension(tile.Height)
	maxHeight := tile.Height.MaxHeight()
	var extension float32
	for _, d := range [2]tilemap.Direction{tilemap.West, tilemap.East} {
		if n, ok := g.Neighbor(x, y, d); ok && n.Height.EqualsFlat(maxHeight) {
			extension += v
		}
	}
	cos, sin := cosSin(angle)
	return cuboid{
		Size: mgl32.Vec3{rampTrimLength(tile.Height) + extension, TrimSize, TrimSize},
		Center: mgl32.Vec3{
			xf + (trimHalf+extension/2)*cos,
			center + (trimHalf-extension/2)*sin,
			zCoord,
		},
		Rotation: mgl32.AnglesToQuat(0, 0, angle, mgl32.XYZ),
	}
}

func cosSin(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(c), float32(s)
}
