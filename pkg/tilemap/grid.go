package tilemap

import "fmt"

// Grid is a row-major rectangle of tiles, at least 1x1.
type Grid struct {
	cols, rows int
	tiles      []TileData
}

// NewGrid returns a grid of void tiles. It panics if either side is < 1.
func NewGrid(cols, rows int) *Grid {
	if cols < 1 || rows < 1 {
		panic(fmt.Sprintf("tilemap: grid size %dx%d is empty", cols, rows))
	}
	tiles := make([]TileData, cols*rows)
	for i := range tiles {
		tiles[i] = NewTileData()
	}
	return &Grid{cols: cols, rows: rows, tiles: tiles}
}

// GridFromRows builds a grid from equally long rows. It panics on an empty
// or ragged input; decoders are expected to validate first.
func GridFromRows(rows [][]TileData) *Grid {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("tilemap: GridFromRows with no tiles")
	}
	cols := len(rows[0])
	tiles := make([]TileData, 0, cols*len(rows))
	for y, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("tilemap: row %d has %d tiles, want %d", y, len(row), cols))
		}
		tiles = append(tiles, row...)
	}
	return &Grid{cols: cols, rows: len(rows), tiles: tiles}
}

// Cols returns the number of columns (X extent).
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows (Z extent).
func (g *Grid) Rows() int {
	return g.rows
}

// Bounds returns the range covering the whole grid.
func (g *Grid) Bounds() TileRange {
	return TileRange{End: Point{g.cols - 1, g.rows - 1}}
}

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.cols && y < g.rows
}

// At returns the tile at (x, y). It panics when out of bounds.
func (g *Grid) At(x, y int) *TileData {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("tilemap: tile (%d, %d) outside %dx%d grid", x, y, g.cols, g.rows))
	}
	return &g.tiles[y*g.cols+x]
}

// Get returns the tile at (x, y), or false when out of bounds.
func (g *Grid) Get(x, y int) (*TileData, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return &g.tiles[y*g.cols+x], true
}

// Neighbor returns the tile next to (x, y) on side d, or false at the map edge.
func (g *Grid) Neighbor(x, y int, d Direction) (*TileData, bool) {
	dx, dy := d.Offset()
	return g.Get(x+dx, y+dy)
}

// Set replaces the tile at (x, y).
func (g *Grid) Set(x, y int, tile TileData) {
	*g.At(x, y) = tile
}

// Index converts a coordinate to its row-major index.
func (g *Grid) Index(x, y int) int {
	return y*g.cols + x
}

// Coord converts a row-major index back to a coordinate.
func (g *Grid) Coord(index int) (x, y int) {
	return index % g.cols, index / g.cols
}

// AdjustHeight raises every tile in r by delta.
func (g *Grid) AdjustHeight(r TileRange, delta float64) {
	it := r.Iter()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		t := g.At(p.X, p.Y)
		t.Height = t.Height.Add(delta)
	}
}

// Heights returns the heights of r in row-major order.
func (g *Grid) Heights(r TileRange) []TileHeight {
	out := make([]TileHeight, 0, r.Area())
	it := r.Iter()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		out = append(out, g.At(p.X, p.Y).Height)
	}
	return out
}

// SetHeights assigns heights to r in row-major order.
// It panics when len(heights) differs from r.Area().
func (g *Grid) SetHeights(r TileRange, heights []TileHeight) {
	if len(heights) != r.Area() {
		panic(fmt.Sprintf("tilemap: %d heights for a range of %d tiles", len(heights), r.Area()))
	}
	it := r.Iter()
	for i := 0; ; i++ {
		p, ok := it.Next()
		if !ok {
			return
		}
		g.At(p.X, p.Y).Height = heights[i]
	}
}

// FindAnimated returns the indices of tiles using animation group id.
func (g *Grid) FindAnimated(id string) []int {
	if id == "" {
		return nil
	}
	var out []int
	for i := range g.tiles {
		if g.tiles[i].AnimationID() == id {
			out = append(out, i)
		}
	}
	return out
}
