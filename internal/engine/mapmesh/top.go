package mapmesh

import "github.com/Faultbox/msp-map-editor/pkg/tilemap"

// meshTop pushes the top quad of the tile at (x, y), raised by yOffset.
// Ramps put neg on the west (horizontal) or north (vertical) corners.
func meshTop(s *State, x, y int, tile *tilemap.TileData, yOffset float32) {
	xf := float32(x)
	yf := float32(y)
	uv := tile.Materials.Top.UV()
	start := s.indexStart()

	dir, isRamp := tile.Height.RampDir()
	if !isRamp {
		h := float32(tile.Height.CenterHeight()) + yOffset
		s.pushPositions(
			[3]float32{xf - 0.5, h, yf - 0.5},
			[3]float32{xf + 0.5, h, yf - 0.5},
			[3]float32{xf - 0.5, h, yf + 0.5},
			[3]float32{xf + 0.5, h, yf + 0.5},
		)
		s.pushQuadUVIndices(uv, start)
		return
	}

	pos := float32(tile.Height.PosHeight()) + yOffset
	neg := float32(tile.Height.NegHeight()) + yOffset
	northEast, southWest := pos, neg
	if dir == tilemap.Vertical {
		northEast, southWest = neg, pos
	}
	s.pushPositions(
		[3]float32{xf - 0.5, neg, yf - 0.5},
		[3]float32{xf + 0.5, northEast, yf - 0.5},
		[3]float32{xf - 0.5, southWest, yf + 0.5},
		[3]float32{xf + 0.5, pos, yf + 0.5},
	)
	s.pushQuadUVIndices(uv, start)
}
