package mapmesh

import "github.com/go-gl/mathgl/mgl32"

// SmoothNormals returns one normal per vertex: the normalized sum of the
// unnormalized normals of every triangle using it, so larger faces weigh more.
// Vertices not referenced by any triangle point up.
func SmoothNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	sums := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa := mgl32.Vec3(positions[a])
		pb := mgl32.Vec3(positions[b])
		pc := mgl32.Vec3(positions[c])
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}

	normals := make([][3]float32, len(positions))
	for i, n := range sums {
		if n.Len() < 1e-12 {
			normals[i] = [3]float32{0, 1, 0}
			continue
		}
		normals[i] = [3]float32(n.Normalize())
	}
	return normals
}

func computeBounds(positions [][3]float32) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, p := range positions {
		for i := range 3 {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}
