// Package board answers movement questions about a map: which tiles a player
// can walk between and by which route.
package board

import (
	"container/heap"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// pathNode represents a node in the A* search.
type pathNode struct {
	p      tilemap.Point
	g      int // steps from start
	f      int // g + heuristic
	parent *pathNode
	index  int // index in heap
}

// pathHeap implements a priority queue for A* pathfinding.
type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }

func (h pathHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].g > h[j].g
}

func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Rules control which connections may be crossed.
type Rules struct {
	HasKey bool // locked connections are passable
}

// PathFinder finds routes between tiles of a grid.
type PathFinder struct {
	grid  *tilemap.Grid
	rules Rules
}

// NewPathFinder creates a pathfinder over g.
func NewPathFinder(g *tilemap.Grid, rules Rules) *PathFinder {
	return &PathFinder{grid: g, rules: rules}
}

// CanMove reports whether a player on (x, y) may step to its neighbor on side d.
// Only the connection of the tile being left is consulted.
func (pf *PathFinder) CanMove(x, y int, d tilemap.Direction) bool {
	from, ok := pf.grid.Get(x, y)
	if !ok || from.IsVoid() {
		return false
	}
	to, ok := pf.grid.Neighbor(x, y, d)
	if !ok || to.IsVoid() {
		return false
	}
	c := from.Connections.Get(d)
	switch {
	case c.Impassible():
		return false
	case c.Locked():
		return pf.rules.HasKey
	default:
		return true
	}
}

// FindPath returns the shortest route from start to goal, both included,
// or nil when goal cannot be reached.
func (pf *PathFinder) FindPath(start, goal tilemap.Point) []tilemap.Point {
	if !pf.walkable(start) || !pf.walkable(goal) {
		return nil
	}

	open := &pathHeap{}
	closed := make(map[tilemap.Point]bool)
	nodes := make(map[tilemap.Point]*pathNode)

	first := &pathNode{p: start, f: manhattan(start, goal)}
	heap.Push(open, first)
	nodes[start] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.p == goal {
			return reconstruct(current)
		}
		closed[current.p] = true

		for _, d := range tilemap.ClockwiseDirections {
			if !pf.CanMove(current.p.X, current.p.Y, d) {
				continue
			}
			dx, dy := d.Offset()
			next := tilemap.Pt(current.p.X+dx, current.p.Y+dy)
			if closed[next] {
				continue
			}

			g := current.g + 1
			neighbor, seen := nodes[next]
			switch {
			case !seen:
				neighbor = &pathNode{p: next, g: g, f: g + manhattan(next, goal), parent: current}
				nodes[next] = neighbor
				heap.Push(open, neighbor)
			case g < neighbor.g:
				neighbor.f += g - neighbor.g
				neighbor.g = g
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}
	return nil
}

// Reachable returns every tile reachable from start in row-major order,
// start included. It returns nil when start is void or outside the grid.
func (pf *PathFinder) Reachable(start tilemap.Point) []tilemap.Point {
	if !pf.walkable(start) {
		return nil
	}
	seen := make([]bool, pf.grid.Cols()*pf.grid.Rows())
	seen[pf.grid.Index(start.X, start.Y)] = true
	queue := []tilemap.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range tilemap.ClockwiseDirections {
			if !pf.CanMove(p.X, p.Y, d) {
				continue
			}
			dx, dy := d.Offset()
			next := tilemap.Pt(p.X+dx, p.Y+dy)
			if i := pf.grid.Index(next.X, next.Y); !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}

	var out []tilemap.Point
	for i, ok := range seen {
		if ok {
			x, y := pf.grid.Coord(i)
			out = append(out, tilemap.Pt(x, y))
		}
	}
	return out
}

func (pf *PathFinder) walkable(p tilemap.Point) bool {
	t, ok := pf.grid.Get(p.X, p.Y)
	return ok && !t.IsVoid()
}

func manhattan(a, b tilemap.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func reconstruct(node *pathNode) []tilemap.Point {
	var path []tilemap.Point
	for ; node != nil; node = node.parent {
		path = append(path, node.p)
	}
	// Reverse path (it's built from goal to start)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
