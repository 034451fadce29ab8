// Package assets owns the meshes, materials and external asset references
// produced and consumed by the mesh engine.
package assets

import (
	"sync"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
)

// Store is an in-memory arena of assets keyed by handle. Handles come from a
// single counter shared by every asset kind, so they are never reused.
// A Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	next      uint32
	meshes    map[mapmesh.MeshHandle]*mapmesh.Mesh
	materials map[mapmesh.MaterialHandle]mapmesh.Material
	textures  map[string]mapmesh.TextureHandle
	scenes    map[string]mapmesh.SceneHandle
	paths     map[uint32]string

	// Stats
	hits   int
	misses int
}

var _ mapmesh.Assets = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		meshes:    make(map[mapmesh.MeshHandle]*mapmesh.Mesh),
		materials: make(map[mapmesh.MaterialHandle]mapmesh.Material),
		textures:  make(map[string]mapmesh.TextureHandle),
		scenes:    make(map[string]mapmesh.SceneHandle),
		paths:     make(map[uint32]string),
	}
}

func (s *Store) mint() uint32 {
	s.next++
	return s.next
}

// AddMesh stores a mesh and returns its handle.
func (s *Store) AddMesh(mesh *mapmesh.Mesh) mapmesh.MeshHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := mapmesh.MeshHandle(s.mint())
	s.meshes[h] = mesh
	return h
}

// AddMaterial stores a material and returns its handle.
func (s *Store) AddMaterial(mat mapmesh.Material) mapmesh.MaterialHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := mapmesh.MaterialHandle(s.mint())
	s.materials[h] = mat
	return h
}

// RegisterTexture returns the handle for a texture path, minting one on first use.
func (s *Store) RegisterTexture(path string) mapmesh.TextureHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.textures[path]; ok {
		s.hits++
		return h
	}
	s.misses++
	h := mapmesh.TextureHandle(s.mint())
	s.textures[path] = h
	s.paths[uint32(h)] = path
	return h
}

// RegisterScene returns the handle for a scene path, minting one on first use.
func (s *Store) RegisterScene(path string) mapmesh.SceneHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.scenes[path]; ok {
		s.hits++
		return h
	}
	s.misses++
	h := mapmesh.SceneHandle(s.mint())
	s.scenes[path] = h
	s.paths[uint32(h)] = path
	return h
}

// Mesh looks up a mesh.
func (s *Store) Mesh(h mapmesh.MeshHandle) (*mapmesh.Mesh, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meshes[h]
	return m, ok
}

// Material looks up a material.
func (s *Store) Material(h mapmesh.MaterialHandle) (mapmesh.Material, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[h]
	return m, ok
}

// TexturePath returns the path a texture handle was registered with.
func (s *Store) TexturePath(h mapmesh.TextureHandle) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[uint32(h)]
	return p, ok
}

// ScenePath returns the path a scene handle was registered with.
func (s *Store) ScenePath(h mapmesh.SceneHandle) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[uint32(h)]
	return p, ok
}

// RemoveMesh frees a mesh. Unknown handles are ignored.
func (s *Store) RemoveMesh(h mapmesh.MeshHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.meshes, h)
}

// RemoveMaterial frees a material. Unknown handles are ignored.
func (s *Store) RemoveMaterial(h mapmesh.MaterialHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.materials, h)
}

// Stats describes the store contents.
type Stats struct {
	Meshes    int
	Materials int
	Textures  int
	Scenes    int
	Hits      int // registrations of an already known path
	Misses    int
}

// Stats returns the current counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Meshes:    len(s.meshes),
		Materials: len(s.materials),
		Textures:  len(s.textures),
		Scenes:    len(s.scenes),
		Hits:      s.hits,
		Misses:    s.misses,
	}
}

// Paths names the external assets a map build needs.
type Paths struct {
	Atlas   string
	Floor   string
	KeyGate string
}

// Resources registers the external assets and returns the handles the mesh
// engine expects. The atlas is wrapped in a fully rough material.
func (s *Store) Resources(p Paths) mapmesh.Resources {
	atlas := s.AddMaterial(mapmesh.Material{
		BaseColor:           mapmesh.RGB8(0xFF, 0xFF, 0xFF),
		BaseColorTexture:    s.RegisterTexture(p.Atlas),
		PerceptualRoughness: 1,
	})
	return mapmesh.Resources{
		Atlas:   atlas,
		Floor:   s.RegisterTexture(p.Floor),
		KeyGate: s.RegisterScene(p.KeyGate),
	}
}
