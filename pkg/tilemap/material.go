package tilemap

import "fmt"

// Atlas layout. The texture atlas is a fixed grid of equally sized cells.
const (
	AtlasColumns  = 16
	AtlasRows     = 16
	TexturesCount = AtlasColumns * AtlasRows

	UIncrement float32 = 1.0 / AtlasColumns
	VIncrement float32 = 1.0 / AtlasRows

	// UVInset keeps bilinear filtering and mipmaps from sampling neighboring cells.
	UVInset float32 = 0.001
)

// Material is an index into the texture atlas. Index 0 is the top-left cell.
type Material uint8

// MaterialFromIndex returns the material for atlas cell index, or false when
// the index is outside the atlas.
func MaterialFromIndex(index int) (Material, bool) {
	if index < 0 || index >= TexturesCount {
		return 0, false
	}
	return Material(index), true
}

// MaterialFromUV returns the material whose atlas cell contains (u, v).
// It is the inverse of Material.UV for any point inside the returned rect.
func MaterialFromUV(u, v float32) (Material, bool) {
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return 0, false
	}
	col := int(u * AtlasColumns)
	row := int(v * AtlasRows)
	return MaterialFromIndex((AtlasRows-1-row)*AtlasColumns + col)
}

// UVRect is an axis-aligned rectangle in texture space.
type UVRect struct {
	U1, V1, U2, V2 float32
}

// Center returns the midpoint of the rect.
func (r UVRect) Center() (u, v float32) {
	return (r.U1 + r.U2) / 2, (r.V1 + r.V2) / 2
}

// UV returns the inset atlas rect of m. Row 0 of the atlas grid sits at the
// bottom of texture space, so the first material row maps to the highest V.
func (m Material) UV() UVRect {
	col := int(m) % AtlasColumns
	row := AtlasRows - 1 - int(m)/AtlasColumns
	u := float32(col) / AtlasColumns
	v := float32(row) / AtlasRows
	return UVRect{
		U1: u + UVInset,
		V1: v + UVInset,
		U2: u + UIncrement - UVInset,
		V2: v + VIncrement - UVInset,
	}
}

// String implements fmt.Stringer.
func (m Material) String() string {
	return fmt.Sprintf("Material(%d)", uint8(m))
}

// WallMaterialMap holds the stacked wall materials of each side, ordered top
// to bottom, one entry per unit of wall height.
type WallMaterialMap struct {
	North []Material
	East  []Material
	South []Material
	West  []Material
}

// DefaultWallMaterials returns a map with a single default material per side.
func DefaultWallMaterials() WallMaterialMap {
	return WallMaterialMap{
		North: []Material{0},
		East:  []Material{0},
		South: []Material{0},
		West:  []Material{0},
	}
}

// Get returns the stack for side d.
func (m *WallMaterialMap) Get(d Direction) []Material {
	return *m.ptr(d)
}

// Set replaces the stack for side d.
func (m *WallMaterialMap) Set(d Direction, stack []Material) {
	*m.ptr(d) = stack
}

// Segment returns the material of wall segment i counted from the top.
// Indices past the end of the stack reuse its last entry. It returns false
// only for an empty stack.
func (m *WallMaterialMap) Segment(d Direction, i int) (Material, bool) {
	stack := m.Get(d)
	if len(stack) == 0 {
		return 0, false
	}
	if i >= len(stack) {
		i = len(stack) - 1
	}
	return stack[i], true
}

func (m *WallMaterialMap) ptr(d Direction) *[]Material {
	switch d {
	case West:
		return &m.West
	case East:
		return &m.East
	case North:
		return &m.North
	case South:
		return &m.South
	}
	panic(fmt.Sprintf("tilemap: invalid direction %d", d))
}

// MaterialMap holds the top material and wall stacks of a tile.
type MaterialMap struct {
	Top   Material
	Walls WallMaterialMap
}
