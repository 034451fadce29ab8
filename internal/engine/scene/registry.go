// Package scene keeps track of the bundles spawned from map builds and
// replaces them when the map changes.
package scene

import (
	"sort"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
)

// EntityID identifies a spawned bundle. Zero is never used.
type EntityID uint64

// Sink is the asset arena bundles are built into and freed from.
type Sink interface {
	mapmesh.Assets
	RemoveMesh(h mapmesh.MeshHandle)
	RemoveMaterial(h mapmesh.MaterialHandle)
}

// Scene is a registry of spawned bundles. It is not safe for concurrent use;
// rebuilds run on a single goroutine.
type Scene struct {
	assets   Sink
	next     EntityID
	entities map[EntityID]*mapmesh.Bundle
}

// New creates an empty scene freeing assets from sink.
func New(sink Sink) *Scene {
	return &Scene{
		assets:   sink,
		entities: make(map[EntityID]*mapmesh.Bundle),
	}
}

// Spawn adds a bundle to the scene.
func (s *Scene) Spawn(b *mapmesh.Bundle) EntityID {
	s.next++
	s.entities[s.next] = b
	return s.next
}

// Despawn removes a bundle and frees the meshes and materials its build
// created. It reports whether id was present.
func (s *Scene) Despawn(id EntityID) bool {
	b, ok := s.entities[id]
	if !ok {
		return false
	}
	delete(s.entities, id)

	meshes, materials := b.Owned()
	for _, h := range meshes {
		s.assets.RemoveMesh(h)
	}
	for _, h := range materials {
		s.assets.RemoveMaterial(h)
	}
	return true
}

// FindTagged returns the oldest entity carrying tag.
func (s *Scene) FindTagged(tag mapmesh.Tag) (EntityID, bool) {
	for _, id := range s.ids() {
		if s.entities[id].Tag == tag {
			return id, true
		}
	}
	return 0, false
}

// DespawnTagged removes every entity carrying tag and returns how many it removed.
func (s *Scene) DespawnTagged(tag mapmesh.Tag) int {
	n := 0
	for _, id := range s.ids() {
		if s.entities[id].Tag == tag {
			s.Despawn(id)
			n++
		}
	}
	return n
}

// Bundle returns the bundle spawned as id.
func (s *Scene) Bundle(id EntityID) (*mapmesh.Bundle, bool) {
	b, ok := s.entities[id]
	return b, ok
}

// Len returns the number of spawned entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// ids returns the entity ids in spawn order.
func (s *Scene) ids() []EntityID {
	ids := make([]EntityID, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
