// Package export writes built map meshes to Wavefront OBJ files.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/msp-map-editor/internal/engine/mapmesh"
)

// ErrMissingMesh is returned when a bundle refers to a mesh the store no longer holds.
var ErrMissingMesh = errors.New("mesh not found")

// MeshSource resolves mesh handles.
type MeshSource interface {
	Mesh(h mapmesh.MeshHandle) (*mapmesh.Mesh, bool)
}

// Group is one named mesh placed in world space.
type Group struct {
	Name      string
	Mesh      *mapmesh.Mesh
	Transform mapmesh.Transform
}

// Options controls what is written.
type Options struct {
	Normals bool
}

// Groups resolves the objects of a bundle, root first, named as they were built.
func Groups(b *mapmesh.Bundle, src MeshSource) ([]Group, error) {
	names := b.Stats().Objects
	objects := b.Objects()
	groups := make([]Group, 0, len(objects))
	for i, obj := range objects {
		mesh, ok := src.Mesh(obj.Mesh)
		if !ok {
			return nil, fmt.Errorf("object %d (handle %d): %w", i, obj.Mesh, ErrMissingMesh)
		}
		name := fmt.Sprintf("object%d", i)
		if i < len(names) {
			name = names[i].Name
		}
		groups = append(groups, Group{Name: name, Mesh: mesh, Transform: obj.Transform})
	}
	return groups, nil
}

// WriteOBJ writes groups as OBJ objects sharing one vertex pool.
// Empty meshes are skipped.
func WriteOBJ(w io.Writer, groups []Group, opts Options) error {
	bw := bufio.NewWriter(w)
	base := 1 // OBJ indices are 1-based and global

	fmt.Fprintln(bw, "# msp map mesh")
	for _, g := range groups {
		m := g.Mesh
		if m == nil || m.VertexCount() == 0 {
			continue
		}
		hasUV := len(m.UVs) == len(m.Positions)
		hasNormals := opts.Normals && len(m.Normals) == len(m.Positions)

		fmt.Fprintf(bw, "o %s\n", g.Name)
		for _, p := range m.Positions {
			v := g.Transform.Apply(mgl32.Vec3(p))
			fmt.Fprintf(bw, "v %s %s %s\n", num(v.X()), num(v.Y()), num(v.Z()))
		}
		if hasUV {
			for _, uv := range m.UVs {
				fmt.Fprintf(bw, "vt %s %s\n", num(uv[0]), num(uv[1]))
			}
		}
		if hasNormals {
			for _, n := range m.Normals {
				r := g.Transform.Rotation.Rotate(mgl32.Vec3(n))
				fmt.Fprintf(bw, "vn %s %s %s\n", num(r.X()), num(r.Y()), num(r.Z()))
			}
		}

		for i := 0; i+2 < len(m.Indices); i += 3 {
			bw.WriteString("f")
			for _, idx := range m.Indices[i : i+3] {
				bw.WriteByte(' ')
				bw.WriteString(faceVertex(base+int(idx), hasUV, hasNormals))
			}
			bw.WriteByte('\n')
		}
		base += m.VertexCount()
	}
	return bw.Flush()
}

// WriteFile writes groups to path, creating parent directories.
func WriteFile(path string, groups []Group, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteOBJ(f, groups, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func faceVertex(i int, uv, normal bool) string {
	s := strconv.Itoa(i)
	switch {
	case uv && normal:
		return s + "/" + s + "/" + s
	case uv:
		return s + "/" + s
	case normal:
		return s + "//" + s
	default:
		return s
	}
}

func num(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
