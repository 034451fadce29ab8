package mapmesh

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// HighlightOffset lifts highlight quads above the tile tops they cover.
const HighlightOffset float32 = 0.01

var log = zap.NewNop()

// SetLogger sets the logger used for build diagnostics. Passing nil silences it.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

// Config holds the colors of the generated materials.
type Config struct {
	BlockColor      Color
	TrimColor       Color
	HighlightColor  Color
	HighlightOffset float32
}

// DefaultConfig returns the editor's stock colors.
func DefaultConfig() Config {
	return Config{
		BlockColor:      RGB8(0x11, 0x11, 0x11),
		TrimColor:       RGB8(0xAA, 0xAA, 0xAA),
		HighlightColor:  RGBA8(0x54, 0xAF, 0xE7, 0x80),
		HighlightOffset: HighlightOffset,
	}
}

// Builder turns grids into bundles, registering what it creates in an asset sink.
type Builder struct {
	assets Assets
	res    Resources
	cfg    Config
}

// New creates a builder.
func New(assets Assets, res Resources, cfg Config) *Builder {
	return &Builder{assets: assets, res: res, cfg: cfg}
}

// BuildMap meshes the whole grid with the default colors.
func BuildMap(g *tilemap.Grid, res Resources, assets Assets) *Bundle {
	return New(assets, res, DefaultConfig()).BuildMap(g)
}

// BuildHighlights meshes the highlight overlay with the default colors.
func BuildHighlights(g *tilemap.Grid, r tilemap.TileRange, assets Assets) *Bundle {
	return New(assets, Resources{}, DefaultConfig()).BuildHighlights(g, r)
}

// BuildMap meshes every non-void tile of g.
//
// The root object carries the atlas textured tops and walls. Children hold the
// barrier blocks, the lip trims and the floor overlay; key gates are props.
func (b *Builder) BuildMap(g *tilemap.Grid) *Bundle {
	started := time.Now()

	atlas := newState(g)
	blocks := newState(g)
	trims := newState(g)
	var gates []Transform
	tiles := 0

	for y := range g.Rows() {
		for x := range g.Cols() {
			tile := g.At(x, y)
			if tile.IsVoid() {
				continue
			}
			tiles++

			meshTop(atlas, x, y, tile, 0)
			for _, d := range wallDirections(g, x, y) {
				meshWall(atlas, x, y, tile, d)
			}
			blocks.pushBoxes(planBlocks(g, x, y))
			trims.pushBoxes(planTrims(g, x, y))
			gates = append(gates, placeGates(g, x, y)...)
		}
	}

	bundle := &Bundle{Tag: TagMapMesh}
	bundle.stats.Tiles = tiles
	bundle.Root = b.object(bundle, "atlas", atlas.Mesh(), b.res.Atlas)
	bundle.Root.CastShadows = true
	bundle.Root.ReceiveShadows = true

	if !blocks.empty() {
		mat := b.material(bundle, Material{BaseColor: b.cfg.BlockColor, PerceptualRoughness: 1})
		child := b.object(bundle, "blocks", blocks.Mesh(), mat)
		child.CastShadows = true
		child.ReceiveShadows = true
		bundle.Children = append(bundle.Children, child)
	}
	if !trims.empty() {
		mat := b.material(bundle, Material{BaseColor: b.cfg.TrimColor, PerceptualRoughness: 1})
		child := b.object(bundle, "trims", trims.Mesh(), mat)
		child.CastShadows = true
		child.ReceiveShadows = true
		bundle.Children = append(bundle.Children, child)
	}

	floorMat := b.material(bundle, Material{
		BaseColor:           RGB8(0xFF, 0xFF, 0xFF),
		BaseColorTexture:    b.res.Floor,
		PerceptualRoughness: 1,
		DoubleSided:         true,
		AlphaMode:           AlphaAdd,
	})
	bundle.Children = append(bundle.Children, b.object(bundle, "floor", floorMesh(g), floorMat))

	for _, t := range gates {
		bundle.Props = append(bundle.Props, Prop{Scene: b.res.KeyGate, Transform: t})
	}
	bundle.stats.Props = len(bundle.Props)

	log.Debug("Built map mesh",
		zap.Int("cols", g.Cols()),
		zap.Int("rows", g.Rows()),
		zap.Int("tiles", tiles),
		zap.Int("vertices", bundle.stats.Vertices()),
		zap.Int("triangles", bundle.stats.Triangles()),
		zap.Int("gates", len(gates)),
		zap.Duration("took", time.Since(started)))

	return bundle
}

// BuildHighlights meshes the tops of every tile in r, void cells included,
// slightly above the map. r is clipped to the grid.
func (b *Builder) BuildHighlights(g *tilemap.Grid, r tilemap.TileRange) *Bundle {
	s := newState(g)
	tiles := 0
	if clipped, ok := r.Intersect(g.Bounds()); ok {
		it := clipped.Iter()
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			meshTop(s, p.X, p.Y, g.At(p.X, p.Y), b.cfg.HighlightOffset)
			tiles++
		}
	}

	bundle := &Bundle{Tag: TagHighlight}
	bundle.stats.Tiles = tiles
	mat := b.material(bundle, Material{
		BaseColor:           b.cfg.HighlightColor,
		PerceptualRoughness: 1,
		DoubleSided:         true,
		Unlit:               true,
		AlphaMode:           AlphaAdd,
	})
	bundle.Root = b.object(bundle, "highlight", s.Mesh(), mat)

	log.Debug("Built highlight mesh",
		zap.Int("tiles", tiles),
		zap.Int("vertices", bundle.stats.Vertices()))

	return bundle
}

// object registers mesh and records it as owned by bundle.
func (b *Builder) object(bundle *Bundle, name string, mesh *Mesh, mat MaterialHandle) Object {
	bundle.stats.Objects = append(bundle.stats.Objects, ObjectStats{
		Name:      name,
		Vertices:  mesh.VertexCount(),
		Triangles: mesh.TriangleCount(),
	})
	h := b.assets.AddMesh(mesh)
	bundle.meshes = append(bundle.meshes, h)
	return Object{
		Mesh:      h,
		Material:  mat,
		Transform: Identity(),
	}
}

func (b *Builder) material(bundle *Bundle, m Material) MaterialHandle {
	h := b.assets.AddMaterial(m)
	bundle.materials = append(bundle.materials, h)
	return h
}

// floorMesh returns one quad under the whole grid with the floor texture
// repeated once per cell.
func floorMesh(g *tilemap.Grid) *Mesh {
	s := newState(g)
	x2 := float32(g.Cols()) - 0.5
	z2 := float32(g.Rows()) - 0.5
	s.pushPositions(
		[3]float32{-0.5, 0, -0.5},
		[3]float32{x2, 0, -0.5},
		[3]float32{-0.5, 0, z2},
		[3]float32{x2, 0, z2},
	)
	s.pushQuadUVIndices(tilemap.UVRect{U1: 0, V1: 0, U2: float32(g.Cols()), V2: float32(g.Rows())}, 0)
	return s.Mesh()
}
