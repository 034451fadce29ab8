package mapmesh

import (
	"math"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// wallDirections returns the sides of the tile at (x, y) that need a wall.
//
// Flat tiles get a wall wherever the neighbor's lowest point is below them.
// Ramps only wall the two sides whose profile is a triangle, comparing
// centre heights. The map edge always counts as lower.
func wallDirections(g *tilemap.Grid, x, y int) []tilemap.Direction {
	tile := g.At(x, y)
	dir, isRamp := tile.Height.RampDir()

	var out []tilemap.Direction
	for _, d := range [4]tilemap.Direction{tilemap.West, tilemap.East, tilemap.North, tilemap.South} {
		sideways := d == tilemap.West || d == tilemap.East
		if isRamp && sideways != (dir == tilemap.Vertical) {
			continue
		}
		n, ok := g.Neighbor(x, y, d)
		switch {
		case !ok:
			out = append(out, d)
		case isRamp && tile.Height.CenterHeight() > n.Height.CenterHeight():
			out = append(out, d)
		case !isRamp && tile.Height.CenterHeight() > n.Height.MinHeight():
			out = append(out, d)
		}
	}
	return out
}

// meshWall pushes the side face of the tile at (x, y) facing d.
//
// Ramps first get a triangle closing the sloped edge down to their lowest
// point. Below that the wall is cut into unit segments from the top down,
// each textured with the next entry of the wall stack; the topmost segment
// may be partial and has its texture cropped to match. Segments stop once the
// neighbor's own top reaches the segment base.
//
// It returns false when the side has no wall materials to texture it with.
func meshWall(s *State, x, y int, tile *tilemap.TileData, d tilemap.Direction) bool {
	start := s.indexStart()
	xf := float32(x)
	yf := float32(y)
	minHeight := float32(tile.Height.MinHeight())

	if tile.IsRamp() {
		first, ok := tile.Materials.Walls.Segment(d, 0)
		if !ok {
			return false
		}
		meshRampCap(s, xf, yf, tile.Height, minHeight, first.UV(), d, start)
		start += 3
	}

	segments := int(math.Ceil(float64(minHeight)))
	lastSegment := float32(math.Mod(float64(minHeight), 1))
	if lastSegment == 0 {
		lastSegment = 1
	}

	neighbor, hasNeighbor := s.grid.Neighbor(x, y, d)

	for seg := segments - 1; seg >= 0; seg-- {
		segF := float32(seg)
		mat, ok := tile.Materials.Walls.Segment(d, segments-1-seg)
		if !ok {
			return false
		}
		uv := mat.UV()
		u1, v1, u2, v2 := uv.U1, uv.V1, uv.U2, uv.V2
		segHeight := float32(1)
		if seg == segments-1 {
			v2 = v2 - tilemap.VIncrement + lastSegment*tilemap.VIncrement
			segHeight = lastSegment
		}
		top := segF + segHeight

		switch d {
		case tilemap.West:
			s.pushPositions(
				[3]float32{xf - 0.5, top, yf - 0.5},
				[3]float32{xf - 0.5, segF, yf - 0.5},
				[3]float32{xf - 0.5, top, yf + 0.5},
				[3]float32{xf - 0.5, segF, yf + 0.5},
			)
			s.pushUVs([2]float32{u1, v1}, [2]float32{u1, v2}, [2]float32{u2, v1}, [2]float32{u2, v2})
			s.pushFlippedQuadIndices(start)
		case tilemap.East:
			s.pushPositions(
				[3]float32{xf + 0.5, top, yf - 0.5},
				[3]float32{xf + 0.5, segF, yf - 0.5},
				[3]float32{xf + 0.5, top, yf + 0.5},
				[3]float32{xf + 0.5, segF, yf + 0.5},
			)
			s.pushUVs([2]float32{u2, v1}, [2]float32{u2, v2}, [2]float32{u1, v1}, [2]float32{u1, v2})
			s.pushQuadIndices(start)
		case tilemap.North:
			s.pushPositions(
				[3]float32{xf - 0.5, segF, yf - 0.5},
				[3]float32{xf + 0.5, segF, yf - 0.5},
				[3]float32{xf - 0.5, top, yf - 0.5},
				[3]float32{xf + 0.5, top, yf - 0.5},
			)
			s.pushUVs([2]float32{u2, v2}, [2]float32{u1, v2}, [2]float32{u2, v1}, [2]float32{u1, v1})
			s.pushQuadIndices(start)
		case tilemap.South:
			s.pushPositions(
				[3]float32{xf - 0.5, segF, yf + 0.5},
				[3]float32{xf + 0.5, segF, yf + 0.5},
				[3]float32{xf - 0.5, top, yf + 0.5},
				[3]float32{xf + 0.5, top, yf + 0.5},
			)
			s.pushUVs([2]float32{u1, v2}, [2]float32{u2, v2}, [2]float32{u1, v1}, [2]float32{u2, v1})
			s.pushFlippedQuadIndices(start)
		}
		start += 4

		if hasNeighbor && float32(neighbor.Height.MinHeight()) >= segF {
			break
		}
	}
	return true
}

// meshRampCap pushes the triangle between a ramp's sloped edge and its
// lowest point. The texture is squeezed vertically by the rise so that a one
// unit rise spans one atlas cell.
func meshRampCap(s *State, xf, yf float32, h tilemap.TileHeight, minHeight float32, uv tilemap.UVRect, d tilemap.Direction, start uint32) {
	u1, u2, v2 := uv.U1, uv.U2, uv.V2
	maxHeight := float32(h.MaxHeight())
	posIsMax := maxHeight == float32(h.PosHeight())
	peak := float32(-0.5)
	if posIsMax {
		peak = 0.5
	}
	highV := v2 + (minHeight-maxHeight)*tilemap.VIncrement
	pick := func(ifPosMax, otherwise float32) float32 {
		if posIsMax {
			return ifPosMax
		}
		return otherwise
	}

	switch d {
	case tilemap.West:
		s.pushPositions(
			[3]float32{xf - 0.5, minHeight, yf - 0.5},
			[3]float32{xf - 0.5, minHeight, yf + 0.5},
			[3]float32{xf - 0.5, maxHeight, yf + peak},
		)
		s.pushUVs([2]float32{u1, v2}, [2]float32{u2, v2}, [2]float32{pick(u2, u1), highV})
		s.indices = append(s.indices, start, start+1, start+2)
	case tilemap.East:
		s.pushPositions(
			[3]float32{xf + 0.5, minHeight, yf - 0.5},
			[3]float32{xf + 0.5, minHeight, yf + 0.5},
			[3]float32{xf + 0.5, maxHeight, yf + peak},
		)
		s.pushUVs([2]float32{u2, v2}, [2]float32{u1, v2}, [2]float32{pick(u1, u2), highV})
		s.indices = append(s.indices, start, start+2, start+1)
	case tilemap.North:
		s.pushPositions(
			[3]float32{xf - 0.5, minHeight, yf - 0.5},
			[3]float32{xf + 0.5, minHeight, yf - 0.5},
			[3]float32{xf + peak, maxHeight, yf - 0.5},
		)
		s.pushUVs([2]float32{u2, v2}, [2]float32{u1, v2}, [2]float32{pick(u1, u2), highV})
		s.indices = append(s.indices, start, start+2, start+1)
	case tilemap.South:
		s.pushPositions(
			[3]float32{xf - 0.5, minHeight, yf + 0.5},
			[3]float32{xf + 0.5, minHeight, yf + 0.5},
			[3]float32{xf + peak, maxHeight, yf + 0.5},
		)
		s.pushUVs([2]float32{u1, v2}, [2]float32{u2, v2}, [2]float32{pick(u2, u1), highV})
		s.indices = append(s.indices, start, start+1, start+2)
	}
}
