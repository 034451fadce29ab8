package mapmesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

type memAssets struct {
	meshes    []*Mesh
	materials []Material
}

func (a *memAssets) AddMesh(m *Mesh) MeshHandle {
	a.meshes = append(a.meshes, m)
	return MeshHandle(len(a.meshes))
}

func (a *memAssets) AddMaterial(m Material) MaterialHandle {
	a.materials = append(a.materials, m)
	return MaterialHandle(len(a.materials))
}

func (a *memAssets) mesh(h MeshHandle) *Mesh {
	return a.meshes[h-1]
}

func (a *memAssets) material(h MaterialHandle) Material {
	return a.materials[h-1]
}

// gridOf builds a grid from per-row heights.
func gridOf(heights ...[]tilemap.TileHeight) *tilemap.Grid {
	rows := make([][]tilemap.TileData, len(heights))
	for y, row := range heights {
		for _, h := range row {
			t := tilemap.NewTileData()
			t.Height = h
			rows[y] = append(rows[y], t)
		}
	}
	return tilemap.GridFromRows(rows)
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

// approxVec compares vectors with an absolute tolerance, so rotation residue
// in zero components passes.
func approxVec(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}

func TestBuildMap_SingleGroundTile(t *testing.T) {
	g := gridOf([]tilemap.TileHeight{tilemap.Flat(0)})
	tile := g.At(0, 0)
	for _, d := range tilemap.ClockwiseDirections {
		tile.Connections.Set(d, tilemap.Unconditional(false))
	}

	assets := &memAssets{}
	b := BuildMap(g, Resources{Atlas: 1}, assets)

	atlas := assets.mesh(b.Root.Mesh)
	if atlas.VertexCount() != 4 || atlas.TriangleCount() != 2 {
		t.Errorf("atlas mesh has %d vertices, %d triangles; want one quad",
			atlas.VertexCount(), atlas.TriangleCount())
	}
	for _, o := range b.Stats().Objects {
		if o.Name == "blocks" {
			t.Errorf("unexpected block object with %d vertices", o.Vertices)
		}
	}
	if got := planBlocks(g, 0, 0); len(got) != 0 {
		t.Errorf("planBlocks() = %d blocks, want 0", len(got))
	}
	if b.Tag != TagMapMesh {
		t.Errorf("Tag = %v, want %v", b.Tag, TagMapMesh)
	}
	if b.Root.Material != 1 {
		t.Errorf("root material = %d, want atlas handle 1", b.Root.Material)
	}
}

func TestBuildMap_SkipsVoid(t *testing.T) {
	g := tilemap.NewGrid(3, 3)
	assets := &memAssets{}
	b := BuildMap(g, Resources{}, assets)

	if got := assets.mesh(b.Root.Mesh).VertexCount(); got != 0 {
		t.Errorf("atlas vertices = %d, want 0", got)
	}
	if b.Stats().Tiles != 0 {
		t.Errorf("Tiles = %d, want 0", b.Stats().Tiles)
	}
	// Only the floor remains.
	if len(b.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(b.Children))
	}
}

func TestBuildMap_Deterministic(t *testing.T) {
	g := gridOf(
		[]tilemap.TileHeight{tilemap.Flat(1), tilemap.Ramp(tilemap.Horizontal, 2, 1), tilemap.Flat(2.5)},
		[]tilemap.TileHeight{{}, tilemap.Flat(0.5), tilemap.Ramp(tilemap.Vertical, 3, 2.5)},
	)
	g.At(0, 0).Connections.East = tilemap.Conditional(tilemap.Lock)
	g.At(1, 0).Connections.West = tilemap.Conditional(tilemap.Lock)
	g.At(1, 1).Connections.North = tilemap.Unconditional(false)

	a1, a2 := &memAssets{}, &memAssets{}
	b1 := BuildMap(g, Resources{KeyGate: 7}, a1)
	b2 := BuildMap(g, Resources{KeyGate: 7}, a2)

	if !reflect.DeepEqual(b1, b2) {
		t.Error("bundles differ between identical builds")
	}
	if !reflect.DeepEqual(a1.meshes, a2.meshes) {
		t.Error("meshes differ between identical builds")
	}
	if len(b1.Props) != 1 || b1.Props[0].Scene != 7 {
		t.Errorf("props = %+v, want one key gate", b1.Props)
	}
}

func TestBuildMap_Materials(t *testing.T) {
	g := gridOf([]tilemap.TileHeight{tilemap.Flat(1), tilemap.Flat(1)})
	g.At(1, 0).Connections.West = tilemap.Unconditional(false)

	assets := &memAssets{}
	b := BuildMap(g, Resources{Floor: 3}, assets)

	names := make([]string, 0, len(b.Stats().Objects))
	for _, o := range b.Stats().Objects {
		names = append(names, o.Name)
	}
	want := []string{"atlas", "blocks", "trims", "floor"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("objects = %v, want %v", names, want)
	}

	cfg := DefaultConfig()
	if got := assets.material(b.Children[0].Material); got.BaseColor != cfg.BlockColor {
		t.Errorf("block color = %v, want %v", got.BaseColor, cfg.BlockColor)
	}
	if got := assets.material(b.Children[1].Material); got.BaseColor != cfg.TrimColor {
		t.Errorf("trim color = %v, want %v", got.BaseColor, cfg.TrimColor)
	}

	floor := b.Children[2]
	fm := assets.material(floor.Material)
	if fm.BaseColorTexture != 3 || fm.AlphaMode != AlphaAdd || !fm.DoubleSided {
		t.Errorf("floor material = %+v", fm)
	}
	if floor.CastShadows || floor.ReceiveShadows {
		t.Error("floor should not take part in shadows")
	}

	mesh := assets.mesh(floor.Mesh)
	wantPos := [][3]float32{{-0.5, 0, -0.5}, {1.5, 0, -0.5}, {-0.5, 0, 0.5}, {1.5, 0, 0.5}}
	if !reflect.DeepEqual(mesh.Positions, wantPos) {
		t.Errorf("floor positions = %v, want %v", mesh.Positions, wantPos)
	}
	if mesh.UVs[3] != [2]float32{2, 1} {
		t.Errorf("floor far UV = %v, want [2 1]", mesh.UVs[3])
	}

	meshes, mats := b.Owned()
	if len(meshes) != 4 || len(mats) != 3 {
		t.Errorf("Owned() = %d meshes, %d materials; want 4, 3", len(meshes), len(mats))
	}
	for _, m := range mats {
		if m == b.Root.Material {
			t.Error("shared atlas material reported as owned")
		}
	}
}

func TestBuildHighlights_Offset(t *testing.T) {
	g := gridOf(
		[]tilemap.TileHeight{tilemap.Flat(1), tilemap.Ramp(tilemap.Horizontal, 2, 1)},
		[]tilemap.TileHeight{tilemap.Ramp(tilemap.Vertical, 0.5, 1.5), tilemap.Flat(3)},
	)

	base := newState(g)
	for y := range g.Rows() {
		for x := range g.Cols() {
			meshTop(base, x, y, g.At(x, y), 0)
		}
	}

	assets := &memAssets{}
	b := BuildHighlights(g, g.Bounds(), assets)
	mesh := assets.mesh(b.Root.Mesh)

	if len(mesh.Positions) != len(base.positions) {
		t.Fatalf("highlight vertices = %d, want %d", len(mesh.Positions), len(base.positions))
	}
	for i, p := range mesh.Positions {
		want := base.positions[i]
		if p[0] != want[0] || p[2] != want[2] || !approx(p[1]-want[1], 0.01) {
			t.Errorf("vertex %d = %v, want %v raised by 0.01", i, p, want)
		}
	}

	m := assets.material(b.Root.Material)
	if !m.Unlit || !m.DoubleSided || m.AlphaMode != AlphaAdd {
		t.Errorf("highlight material = %+v", m)
	}
	if b.Tag != TagHighlight {
		t.Errorf("Tag = %v, want %v", b.Tag, TagHighlight)
	}
}

func TestBuildHighlights_ClipsRange(t *testing.T) {
	g := tilemap.NewGrid(2, 2)

	tests := []struct {
		name  string
		r     tilemap.TileRange
		tiles int
	}{
		{"inside", tilemap.SingleTile(tilemap.Pt(1, 1)), 1},
		{"overhang", tilemap.TileRange{Start: tilemap.Pt(1, 0), End: tilemap.Pt(5, 5)}, 2},
		{"outside", tilemap.TileRange{Start: tilemap.Pt(4, 4), End: tilemap.Pt(5, 5)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assets := &memAssets{}
			b := BuildHighlights(g, tt.r, assets)
			if got := b.Stats().Tiles; got != tt.tiles {
				t.Errorf("Tiles = %d, want %d", got, tt.tiles)
			}
			if got := assets.mesh(b.Root.Mesh).VertexCount(); got != 4*tt.tiles {
				t.Errorf("vertices = %d, want %d", got, 4*tt.tiles)
			}
		})
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	BuildMap(tilemap.NewGrid(1, 1), Resources{}, &memAssets{})
}
