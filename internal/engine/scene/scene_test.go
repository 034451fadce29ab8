package scene

import (
	"testing"

	"github.com/Faultbox/msp-map-editor/internal/assets"
	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

func newPreviewer(t *testing.T) (*Previewer, *Scene, *assets.Store, mapmesh.Resources) {
	t.Helper()
	store := assets.NewStore()
	res := store.Resources(assets.Paths{Atlas: "atlas.png", Floor: "floor.png", KeyGate: "gate.glb"})
	sc := New(store)
	return NewPreviewer(sc, mapmesh.New(store, res, mapmesh.DefaultConfig())), sc, store, res
}

func testGrid() *tilemap.Grid {
	g := tilemap.NewGrid(3, 2)
	g.At(0, 0).Height = tilemap.Flat(1)
	g.At(1, 0).Height = tilemap.Flat(2)
	g.At(2, 1).Height = tilemap.Ramp(tilemap.Horizontal, 1, 0.5)
	return g
}

func TestScene_SpawnDespawn(t *testing.T) {
	store := assets.NewStore()
	sc := New(store)

	b := mapmesh.BuildMap(testGrid(), mapmesh.Resources{}, store)
	id := sc.Spawn(b)
	if id == 0 {
		t.Fatal("Spawn() returned the zero id")
	}
	if got, ok := sc.Bundle(id); !ok || got != b {
		t.Fatalf("Bundle(%d) = %v, %v", id, got, ok)
	}

	if !sc.Despawn(id) {
		t.Fatal("Despawn() = false")
	}
	if sc.Despawn(id) {
		t.Error("second Despawn() = true")
	}
	if st := store.Stats(); st.Meshes != 0 || st.Materials != 0 {
		t.Errorf("store not emptied: %+v", st)
	}
}

func TestScene_FindTagged(t *testing.T) {
	sc := New(assets.NewStore())
	first := sc.Spawn(&mapmesh.Bundle{Tag: mapmesh.TagHighlight})
	sc.Spawn(&mapmesh.Bundle{Tag: mapmesh.TagMapMesh})
	sc.Spawn(&mapmesh.Bundle{Tag: mapmesh.TagHighlight})

	if id, ok := sc.FindTagged(mapmesh.TagHighlight); !ok || id != first {
		t.Errorf("FindTagged() = %d, %v; want %d", id, ok, first)
	}
	if n := sc.DespawnTagged(mapmesh.TagHighlight); n != 2 {
		t.Errorf("DespawnTagged() = %d, want 2", n)
	}
	if _, ok := sc.FindTagged(mapmesh.TagHighlight); ok {
		t.Error("highlight still present")
	}
	if sc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sc.Len())
	}
}

func TestPreviewer_RemeshReplaces(t *testing.T) {
	p, sc, store, res := newPreviewer(t)
	g := testGrid()

	first := p.Remesh(g)
	after := store.Stats()

	g.At(0, 1).Height = tilemap.Flat(3)
	second := p.Remesh(g)

	if first == second {
		t.Error("Remesh() reused the entity id")
	}
	if _, ok := sc.Bundle(first); ok {
		t.Error("previous map mesh still spawned")
	}
	if id, ok := sc.FindTagged(mapmesh.TagMapMesh); !ok || id != second {
		t.Errorf("FindTagged() = %d, %v; want %d", id, ok, second)
	}
	if sc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sc.Len())
	}
	if st := store.Stats(); st.Meshes != after.Meshes || st.Materials != after.Materials {
		t.Errorf("store grew across rebuilds: %+v then %+v", after, st)
	}
	if _, ok := store.Material(res.Atlas); !ok {
		t.Error("shared atlas material was freed")
	}
}

func TestPreviewer_Highlight(t *testing.T) {
	p, sc, _, _ := newPreviewer(t)
	g := testGrid()

	p.Remesh(g)
	p.Highlight(g, tilemap.SingleTile(tilemap.Pt(0, 0)))
	id := p.Highlight(g, tilemap.NewTileRange(tilemap.Pt(2, 1), tilemap.Pt(0, 0)))

	b, ok := sc.Bundle(id)
	if !ok {
		t.Fatal("highlight not spawned")
	}
	if got := b.Stats().Tiles; got != 6 {
		t.Errorf("highlight tiles = %d, want 6", got)
	}
	if sc.Len() != 2 {
		t.Errorf("Len() = %d, want map mesh and one highlight", sc.Len())
	}

	p.ClearHighlight()
	if _, ok := sc.FindTagged(mapmesh.TagHighlight); ok {
		t.Error("highlight still present after ClearHighlight")
	}
	if _, ok := sc.FindTagged(mapmesh.TagMapMesh); !ok {
		t.Error("ClearHighlight removed the map mesh")
	}
}
