package mapmesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// State accumulates the vertex and index buffers of one mesh.
//
// Every quad is pushed as four vertices in the same layout:
// 0 = (-u, -v), 1 = (+u, -v), 2 = (-u, +v), 3 = (+u, +v).
type State struct {
	grid      *tilemap.Grid
	positions [][3]float32
	uvs       [][2]float32
	indices   []uint32
}

func newState(grid *tilemap.Grid) *State {
	return &State{grid: grid}
}

// indexStart returns the index the next pushed vertex will get.
func (s *State) indexStart() uint32 {
	return uint32(len(s.positions))
}

func (s *State) pushPositions(p ...[3]float32) {
	s.positions = append(s.positions, p...)
}

func (s *State) pushUVs(uv ...[2]float32) {
	s.uvs = append(s.uvs, uv...)
}

// pushQuadUVIndices appends the corner UVs of r and forward quad indices.
func (s *State) pushQuadUVIndices(r tilemap.UVRect, start uint32) {
	s.uvs = append(s.uvs,
		[2]float32{r.U1, r.V1},
		[2]float32{r.U2, r.V1},
		[2]float32{r.U1, r.V2},
		[2]float32{r.U2, r.V2},
	)
	s.pushQuadIndices(start)
}

// pushQuadIndices appends two triangles with forward winding.
func (s *State) pushQuadIndices(start uint32) {
	s.indices = append(s.indices,
		start, start+3, start+1,
		start, start+2, start+3,
	)
}

// pushFlippedQuadIndices appends two triangles facing the other way.
func (s *State) pushFlippedQuadIndices(start uint32) {
	s.indices = append(s.indices,
		start, start+1, start+3,
		start, start+3, start+2,
	)
}

// cuboidFaces lists, per face, the corner the quad starts at and the two
// edges spanning it, in half-extent units. Forward winding over this layout
// makes every face point out of the box.
var cuboidFaces = [6]struct {
	origin, u, v mgl32.Vec3
}{
	{mgl32.Vec3{-1, 1, -1}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 0, 2}},  // +Y
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{2, 0, 0}}, // -Y
	{mgl32.Vec3{1, -1, -1}, mgl32.Vec3{0, 0, 2}, mgl32.Vec3{0, 2, 0}},  // +X
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 0, 2}}, // -X
	{mgl32.Vec3{-1, -1, 1}, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{2, 0, 0}},  // +Z
	{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 2, 0}}, // -Z
}

var fullUV = tilemap.UVRect{U1: 0, V1: 0, U2: 1, V2: 1}

// pushCuboid appends a box of the given size, rotated about its centre and
// moved to center.
func (s *State) pushCuboid(size, center mgl32.Vec3, rot mgl32.Quat) {
	half := size.Mul(0.5)
	corner := func(p mgl32.Vec3) [3]float32 {
		local := mgl32.Vec3{p.X() * half.X(), p.Y() * half.Y(), p.Z() * half.Z()}
		world := rot.Rotate(local).Add(center)
		return [3]float32{world.X(), world.Y(), world.Z()}
	}
	for _, f := range cuboidFaces {
		start := s.indexStart()
		s.pushPositions(
			corner(f.origin),
			corner(f.origin.Add(f.u)),
			corner(f.origin.Add(f.v)),
			corner(f.origin.Add(f.u).Add(f.v)),
		)
		s.pushQuadUVIndices(fullUV, start)
	}
}

// empty reports whether nothing has been pushed.
func (s *State) empty() bool {
	return len(s.indices) == 0
}

// Mesh finalizes the buffers into a triangle list with smooth normals.
func (s *State) Mesh() *Mesh {
	return &Mesh{
		Positions: s.positions,
		UVs:       s.uvs,
		Normals:   SmoothNormals(s.positions, s.indices),
		Indices:   s.indices,
		Bounds:    computeBounds(s.positions),
	}
}
