package tilemap

import "fmt"

// Point is an integer grid coordinate. X is the column, Y is the row.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// TileRange is an inclusive rectangle of grid coordinates.
type TileRange struct {
	Start Point
	End   Point
}

// NewTileRange returns the range spanned by two opposite corners in any order.
func NewTileRange(a, b Point) TileRange {
	return TileRange{
		Start: Point{min(a.X, b.X), min(a.Y, b.Y)},
		End:   Point{max(a.X, b.X), max(a.Y, b.Y)},
	}
}

// SingleTile returns a range covering only p.
func SingleTile(p Point) TileRange {
	return TileRange{Start: p, End: p}
}

// Width returns the number of columns.
func (r TileRange) Width() int {
	return r.End.X - r.Start.X + 1
}

// Height returns the number of rows.
func (r TileRange) Height() int {
	return r.End.Y - r.Start.Y + 1
}

// Area returns the number of coordinates in the range.
func (r TileRange) Area() int {
	return r.Width() * r.Height()
}

// Contains reports whether p lies inside the range.
func (r TileRange) Contains(p Point) bool {
	return p.X >= r.Start.X && p.X <= r.End.X && p.Y >= r.Start.Y && p.Y <= r.End.Y
}

// Intersect clips r to other. The second result is false when they do not overlap.
func (r TileRange) Intersect(other TileRange) (TileRange, bool) {
	out := TileRange{
		Start: Point{max(r.Start.X, other.Start.X), max(r.Start.Y, other.Start.Y)},
		End:   Point{min(r.End.X, other.End.X), min(r.End.Y, other.End.Y)},
	}
	if out.End.X < out.Start.X || out.End.Y < out.Start.Y {
		return TileRange{}, false
	}
	return out, true
}

// Iter returns a row-major iterator over the range. Each call starts over.
// It panics if End is before Start on either axis.
func (r TileRange) Iter() *TileRangeIterator {
	if r.End.X < r.Start.X || r.End.Y < r.Start.Y {
		panic(fmt.Sprintf("tilemap: inverted tile range %v", r))
	}
	start := r.Start
	return &TileRangeIterator{rng: r, current: &start}
}

// Points collects the range into a slice in row-major order.
func (r TileRange) Points() []Point {
	it := r.Iter()
	out := make([]Point, 0, it.Len())
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		out = append(out, p)
	}
	return out
}

// TileRangeIterator walks a TileRange row by row.
type TileRangeIterator struct {
	rng     TileRange
	current *Point
}

// Next returns the next coordinate, or false when the range is exhausted.
func (it *TileRangeIterator) Next() (Point, bool) {
	if it.current == nil {
		return Point{}, false
	}
	result := *it.current
	switch {
	case result.X < it.rng.End.X:
		it.current.X++
	case result.Y < it.rng.End.Y:
		it.current.X = it.rng.Start.X
		it.current.Y++
	default:
		it.current = nil
	}
	return result, true
}

// Nth skips n coordinates and returns the one after them, so Nth(0) is Next().
// It panics if n is negative.
func (it *TileRangeIterator) Nth(n int) (Point, bool) {
	if n < 0 {
		panic(fmt.Sprintf("tilemap: negative Nth(%d)", n))
	}
	if it.current == nil {
		return Point{}, false
	}
	if n >= it.Len() {
		it.current = nil
		return Point{}, false
	}
	width := it.rng.Width()
	offset := (it.current.X - it.rng.Start.X) + n
	it.current.Y += offset / width
	it.current.X = it.rng.Start.X + offset%width
	return it.Next()
}

// Len returns the number of coordinates left.
func (it *TileRangeIterator) Len() int {
	if it.current == nil {
		return 0
	}
	remainingInRow := it.rng.End.X - it.current.X + 1
	return remainingInRow + it.rng.Width()*(it.rng.End.Y-it.current.Y)
}
