// Package tilemap provides the tile grid data model for MSP board maps.
package tilemap

import (
	"fmt"
	"math"
)

// RampDirection is the axis along which a ramp's height varies.
type RampDirection uint8

// Ramp directions.
const (
	Horizontal RampDirection = iota // varies along X (west to east)
	Vertical                        // varies along Z (north to south)
)

// String returns the short name used by the map file format.
func (d RampDirection) String() string {
	switch d {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		return fmt.Sprintf("RampDirection(%d)", d)
	}
}

// TileHeight is either a flat height or a ramp between two heights.
//
// The zero value is the void height marking a cell with no tile. It reads as
// height 0 everywhere but is distinct from Flat(0). All height math should go
// through the accessor methods so the ramp formulas stay in one place.
type TileHeight struct {
	solid bool
	ramp  bool
	dir   RampDirection
	pos   float64 // flat height when !ramp
	neg   float64
}

// Flat returns a flat height.
func Flat(height float64) TileHeight {
	return TileHeight{solid: true, pos: height}
}

// Ramp returns a ramp rising from neg (west/north edge) to pos (east/south edge).
func Ramp(dir RampDirection, pos, neg float64) TileHeight {
	return TileHeight{solid: true, ramp: true, dir: dir, pos: pos, neg: neg}
}

// IsRamp reports whether h is a ramp.
func (h TileHeight) IsRamp() bool {
	return h.ramp
}

// IsVoid reports whether h marks an empty cell.
func (h TileHeight) IsVoid() bool {
	return !h.solid
}

// RampDir returns the ramp axis, or false for flat heights.
func (h TileHeight) RampDir() (RampDirection, bool) {
	if !h.ramp {
		return 0, false
	}
	return h.dir, true
}

// CenterHeight returns the height at the middle of the tile.
func (h TileHeight) CenterHeight() float64 {
	if !h.ramp {
		return h.pos
	}
	return (h.pos-h.neg)/2 + h.neg
}

// MinHeight returns the lowest point of the tile top.
func (h TileHeight) MinHeight() float64 {
	if !h.ramp {
		return h.pos
	}
	return math.Min(h.pos, h.neg)
}

// MaxHeight returns the highest point of the tile top.
func (h TileHeight) MaxHeight() float64 {
	if !h.ramp {
		return h.pos
	}
	return math.Max(h.pos, h.neg)
}

// PosHeight returns the height at the positive (east/south) end.
func (h TileHeight) PosHeight() float64 {
	return h.pos
}

// NegHeight returns the height at the negative (west/north) end.
func (h TileHeight) NegHeight() float64 {
	if !h.ramp {
		return h.pos
	}
	return h.neg
}

// EqualsFlat reports whether h is flat at exactly height.
func (h TileHeight) EqualsFlat(height float64) bool {
	return h == Flat(height)
}

// Add raises every point of the tile by delta. Void heights stay void.
func (h TileHeight) Add(delta float64) TileHeight {
	if !h.solid {
		return h
	}
	h.pos += delta
	if h.ramp {
		h.neg += delta
	}
	return h
}

// WithPosHeight returns a copy of the ramp with a new positive end.
// It panics on flat heights.
func (h TileHeight) WithPosHeight(pos float64) TileHeight {
	if !h.ramp {
		panic("tilemap: WithPosHeight called on flat height")
	}
	h.pos = pos
	return h
}

// WithNegHeight returns a copy of the ramp with a new negative end.
// It panics on flat heights.
func (h TileHeight) WithNegHeight(neg float64) TileHeight {
	if !h.ramp {
		panic("tilemap: WithNegHeight called on flat height")
	}
	h.neg = neg
	return h
}

// WithFlippedHeights swaps the ends of a ramp. Other heights are returned as is.
func (h TileHeight) WithFlippedHeights() TileHeight {
	if h.ramp {
		h.pos, h.neg = h.neg, h.pos
	}
	return h
}

// WithRampDir converts between flat and ramp heights.
// A nil dir flattens a ramp to its centre height; a non-nil dir turns a
// flat tile into a level ramp or re-orients an existing ramp. Void heights
// are returned as is.
func (h TileHeight) WithRampDir(dir *RampDirection) TileHeight {
	switch {
	case !h.solid:
		return h
	case dir == nil && !h.ramp:
		return h
	case dir == nil:
		return Flat(h.CenterHeight())
	case !h.ramp:
		return Ramp(*dir, h.pos, h.pos)
	default:
		h.dir = *dir
		return h
	}
}

// String implements fmt.Stringer.
func (h TileHeight) String() string {
	if !h.solid {
		return "Void"
	}
	if !h.ramp {
		return fmt.Sprintf("Flat(%g)", h.pos)
	}
	return fmt.Sprintf("Ramp(%s, pos=%g, neg=%g)", h.dir, h.pos, h.neg)
}
