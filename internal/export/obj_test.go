package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/internal/assets"
	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

func quad() *mapmesh.Mesh {
	return &mapmesh.Mesh{
		Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		UVs:       [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Normals:   [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 2, 1, 0, 3, 2},
	}
}

func countPrefix(s, prefix string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func TestWriteOBJ(t *testing.T) {
	groups := []Group{
		{Name: "a", Mesh: quad(), Transform: mapmesh.Identity()},
		{Name: "empty", Mesh: &mapmesh.Mesh{}, Transform: mapmesh.Identity()},
		{Name: "b", Mesh: quad(), Transform: mapmesh.FromTranslation(mgl32.Vec3{10, 0, 0})},
	}

	tests := []struct {
		name      string
		opts      Options
		normals   int
		firstFace string
		lastFace  string
	}{
		{"with normals", Options{Normals: true}, 8, "f 1/1/1 3/3/3 2/2/2", "f 5/5/5 8/8/8 7/7/7"},
		{"without normals", Options{}, 0, "f 1/1 3/3 2/2", "f 5/5 8/8 7/7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOBJ(&buf, groups, tt.opts); err != nil {
				t.Fatalf("WriteOBJ() error = %v", err)
			}
			out := buf.String()

			if got := countPrefix(out, "o "); got != 2 {
				t.Errorf("objects = %d, want 2 (empty mesh skipped)", got)
			}
			if got := countPrefix(out, "v "); got != 8 {
				t.Errorf("vertices = %d, want 8", got)
			}
			if got := countPrefix(out, "vt "); got != 8 {
				t.Errorf("uvs = %d, want 8", got)
			}
			if got := countPrefix(out, "vn "); got != tt.normals {
				t.Errorf("normals = %d, want %d", got, tt.normals)
			}
			faces := []string{}
			for _, line := range strings.Split(out, "\n") {
				if strings.HasPrefix(line, "f ") {
					faces = append(faces, line)
				}
			}
			if len(faces) != 4 {
				t.Fatalf("faces = %d, want 4", len(faces))
			}
			if faces[0] != tt.firstFace {
				t.Errorf("first face = %q, want %q", faces[0], tt.firstFace)
			}
			if faces[3] != tt.lastFace {
				t.Errorf("last face = %q, want %q", faces[3], tt.lastFace)
			}
			if !strings.Contains(out, "v 11 0 1\n") {
				t.Error("second object should be translated by +10 on X")
			}
		})
	}
}

func TestGroups(t *testing.T) {
	store := assets.NewStore()
	res := store.Resources(assets.Paths{Atlas: "atlas.png", Floor: "floor.png", KeyGate: "gate.glb"})
	g := tilemap.NewGrid(2, 1)
	g.Set(0, 0, tilemap.TileData{Height: tilemap.Flat(2), Materials: tilemap.MaterialMap{Walls: tilemap.DefaultWallMaterials()}})
	g.Set(1, 0, tilemap.TileData{Height: tilemap.Flat(1), Materials: tilemap.MaterialMap{Walls: tilemap.DefaultWallMaterials()}})

	b := mapmesh.BuildMap(g, res, store)
	groups, err := Groups(b, store)
	if err != nil {
		t.Fatalf("Groups() error = %v", err)
	}
	if len(groups) != len(b.Objects()) {
		t.Fatalf("len(groups) = %d, want %d", len(groups), len(b.Objects()))
	}
	if groups[0].Name != "atlas" {
		t.Errorf("groups[0].Name = %q, want atlas", groups[0].Name)
	}
	if last := groups[len(groups)-1].Name; last != "floor" {
		t.Errorf("last group = %q, want floor", last)
	}

	meshes, _ := b.Owned()
	store.RemoveMesh(meshes[0])
	if _, err := Groups(b, store); !errors.Is(err, ErrMissingMesh) {
		t.Errorf("Groups() after removal error = %v, want ErrMissingMesh", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "map.obj")
	if err := WriteFile(path, []Group{{Name: "a", Mesh: quad(), Transform: mapmesh.Identity()}}, Options{}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# msp map mesh\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}
