// Package mapmesh builds renderable geometry from a tile grid.
//
// Every build starts from scratch: the grid is read, never written, and the
// caller discards the previous bundle when a new one is produced.
package mapmesh

// Handles are opaque references into the asset arena. Zero is never a valid handle.
type (
	MeshHandle     uint32
	MaterialHandle uint32
	TextureHandle  uint32
	SceneHandle    uint32
)

// Assets is the sink that owns every mesh and material the builder creates.
type Assets interface {
	AddMesh(mesh *Mesh) MeshHandle
	AddMaterial(mat Material) MaterialHandle
}

// Resources are the externally loaded assets a map build refers to.
type Resources struct {
	Atlas   MaterialHandle // material sampling the 16x16 texture atlas
	Floor   TextureHandle  // texture tiled once per cell across the floor overlay
	KeyGate SceneHandle    // prop placed on locked connections
}

// Color is a linear RGBA color.
type Color [4]float32

// RGB8 returns an opaque color from 8-bit sRGB-style channels.
func RGB8(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBA8 returns a color from 8-bit channels.
func RGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// AlphaMode selects how a material is blended.
type AlphaMode uint8

// Alpha modes.
const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
	AlphaAdd
)

// Material describes a surface. DoubleSided materials disable back-face culling.
type Material struct {
	BaseColor           Color
	BaseColorTexture    TextureHandle
	PerceptualRoughness float32
	DoubleSided         bool
	Unlit               bool
	AlphaMode           AlphaMode
}

// Mesh is an indexed triangle list ready for GPU upload.
type Mesh struct {
	Positions [][3]float32
	UVs       [][2]float32
	Normals   [][3]float32
	Indices   []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Tag identifies what a bundle is so callers can find and replace it.
type Tag uint8

// Bundle tags.
const (
	TagMapMesh Tag = iota + 1
	TagHighlight
)

// String implements fmt.Stringer.
func (t Tag) String() string {
	switch t {
	case TagMapMesh:
		return "map-mesh"
	case TagHighlight:
		return "highlight"
	default:
		return "untagged"
	}
}

// Object is one mesh drawn with one material.
type Object struct {
	Mesh           MeshHandle
	Material       MaterialHandle
	Transform      Transform
	CastShadows    bool
	ReceiveShadows bool
}

// Prop is an externally loaded scene placed in the map.
type Prop struct {
	Scene     SceneHandle
	Transform Transform
}

// Bundle is the output of a build: a root object with its children and props.
type Bundle struct {
	Tag      Tag
	Root     Object
	Children []Object
	Props    []Prop

	stats     Stats
	meshes    []MeshHandle
	materials []MaterialHandle
}

// Owned returns the handles the build created. Shared resources passed in
// through Resources are not included, so the caller can free these when the
// bundle is discarded.
func (b *Bundle) Owned() ([]MeshHandle, []MaterialHandle) {
	return b.meshes, b.materials
}

// Stats returns the geometry counts recorded when the bundle was built.
func (b *Bundle) Stats() Stats {
	return b.stats
}

// Objects returns the root followed by every child.
func (b *Bundle) Objects() []Object {
	out := make([]Object, 0, 1+len(b.Children))
	out = append(out, b.Root)
	return append(out, b.Children...)
}

// ObjectStats holds the geometry counts of one built object.
type ObjectStats struct {
	Name      string
	Vertices  int
	Triangles int
}

// Stats summarizes a build.
type Stats struct {
	Tiles   int // non-void tiles meshed
	Objects []ObjectStats
	Props   int
}

// Vertices returns the vertex count over every object.
func (s Stats) Vertices() int {
	n := 0
	for _, o := range s.Objects {
		n += o.Vertices
	}
	return n
}

// Triangles returns the triangle count over every object.
func (s Stats) Triangles() int {
	n := 0
	for _, o := range s.Objects {
		n += o.Triangles
	}
	return n
}
