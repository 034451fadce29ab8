package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
	"github.com/Faultbox/msp-map-editor/internal/logger"
	"github.com/Faultbox/msp-map-editor/pkg/tilemap"
)

// Previewer keeps one map mesh and at most one highlight in a scene, rebuilding
// them from scratch whenever the grid or selection changes.
type Previewer struct {
	scene   *Scene
	builder *mapmesh.Builder
}

// NewPreviewer creates a previewer spawning into scene.
func NewPreviewer(scene *Scene, builder *mapmesh.Builder) *Previewer {
	return &Previewer{scene: scene, builder: builder}
}

// Remesh replaces the current map mesh with one built from g.
func (p *Previewer) Remesh(g *tilemap.Grid) EntityID {
	return p.replace(mapmesh.TagMapMesh, p.builder.BuildMap(g))
}

// Highlight replaces the current selection overlay with the tiles of r.
func (p *Previewer) Highlight(g *tilemap.Grid, r tilemap.TileRange) EntityID {
	return p.replace(mapmesh.TagHighlight, p.builder.BuildHighlights(g, r))
}

// ClearHighlight removes the selection overlay, if any.
func (p *Previewer) ClearHighlight() {
	p.scene.DespawnTagged(mapmesh.TagHighlight)
}

func (p *Previewer) replace(tag mapmesh.Tag, b *mapmesh.Bundle) EntityID {
	removed := p.scene.DespawnTagged(tag)
	id := p.scene.Spawn(b)
	stats := b.Stats()
	logger.Debug("Replaced bundle",
		zap.Stringer("tag", tag),
		zap.Uint64("entity", uint64(id)),
		zap.Int("removed", removed),
		zap.Int("vertices", stats.Vertices()),
		zap.Int("props", stats.Props))
	return id
}
