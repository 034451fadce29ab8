package assets

import (
	"sync"
	"testing"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

func TestStore_HandlesAreUnique(t *testing.T) {
	s := NewStore()
	m := s.AddMesh(&mapmesh.Mesh{})
	mat := s.AddMaterial(mapmesh.Material{})
	tex := s.RegisterTexture("a.png")
	scn := s.RegisterScene("gate.glb")

	seen := map[uint32]bool{}
	for _, h := range []uint32{uint32(m), uint32(mat), uint32(tex), uint32(scn)} {
		if h == 0 {
			t.Error("handle 0 is reserved")
		}
		if seen[h] {
			t.Errorf("handle %d minted twice", h)
		}
		seen[h] = true
	}
}

func TestStore_RegisterIsCached(t *testing.T) {
	s := NewStore()
	a := s.RegisterTexture("atlas.png")
	b := s.RegisterTexture("atlas.png")
	c := s.RegisterTexture("floor.png")

	if a != b {
		t.Errorf("same path registered as %d and %d", a, b)
	}
	if a == c {
		t.Error("different paths share a handle")
	}
	if p, ok := s.TexturePath(c); !ok || p != "floor.png" {
		t.Errorf("TexturePath() = %q, %v", p, ok)
	}

	st := s.Stats()
	if st.Hits != 1 || st.Misses != 2 || st.Textures != 2 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	mesh := &mapmesh.Mesh{Indices: []uint32{0, 1, 2}}
	h := s.AddMesh(mesh)
	mh := s.AddMaterial(mapmesh.Material{PerceptualRoughness: 1})

	if got, ok := s.Mesh(h); !ok || got != mesh {
		t.Fatalf("Mesh() = %v, %v", got, ok)
	}
	s.RemoveMesh(h)
	s.RemoveMaterial(mh)
	s.RemoveMesh(h) // no-op

	if _, ok := s.Mesh(h); ok {
		t.Error("mesh still present after RemoveMesh")
	}
	if _, ok := s.Material(mh); ok {
		t.Error("material still present after RemoveMaterial")
	}
	if h2 := s.AddMesh(mesh); h2 == h {
		t.Error("handle reused after removal")
	}
}

func TestStore_Resources(t *testing.T) {
	s := NewStore()
	res := s.Resources(Paths{Atlas: "atlas.png", Floor: "floor.png", KeyGate: "gate.glb"})

	atlas, ok := s.Material(res.Atlas)
	if !ok {
		t.Fatal("atlas material missing")
	}
	if p, _ := s.TexturePath(atlas.BaseColorTexture); p != "atlas.png" {
		t.Errorf("atlas texture path = %q", p)
	}
	if p, _ := s.ScenePath(res.KeyGate); p != "gate.glb" {
		t.Errorf("key gate path = %q", p)
	}
}

func TestStore_AsBuildSink(t *testing.T) {
	s := NewStore()
	res := s.Resources(Paths{Atlas: "atlas.png", Floor: "floor.png", KeyGate: "gate.glb"})

	g := tilemap.NewGrid(2, 2)
	g.At(0, 0).Height = tilemap.Flat(1)
	b := mapmesh.BuildMap(g, res, s)

	for _, o := range b.Objects() {
		if _, ok := s.Mesh(o.Mesh); !ok {
			t.Errorf("object mesh %d not in store", o.Mesh)
		}
		if _, ok := s.Material(o.Material); !ok {
			t.Errorf("object material %d not in store", o.Material)
		}
	}
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				h := s.AddMesh(&mapmesh.Mesh{})
				s.Mesh(h)
				s.RegisterTexture("shared.png")
			}
		}()
	}
	wg.Wait()

	st := s.Stats()
	if st.Meshes != 800 || st.Textures != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}
