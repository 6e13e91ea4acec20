package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrUnsupportedFormat is returned for asset extensions the loader cannot read.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Extent is the size of the largest bounding-box dimension after
	// loading. Zero keeps the asset's own units.
	Extent float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{Extent: 2}
}

// LoadGLB loads a binary GLTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh with node transforms
// applied.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
	default:
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), ErrUnsupportedFormat)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	roots := sceneRoots(doc)
	if len(roots) == 0 {
		// No scene graph: take every mesh untransformed
		for _, m := range doc.Meshes {
			if err := appendMesh(doc, m, mgl64.Ident4(), mesh); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}
	for _, n := range roots {
		if err := walkNode(doc, n, mgl64.Ident4(), mesh, 0); err != nil {
			return nil, err
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("load %s: %w", mesh.Name, ErrNoGeometry)
	}

	if l.Extent > 0 {
		mesh.Fit(l.Extent)
	} else {
		mesh.CalculateBounds()
	}

	return mesh, nil
}

// sceneRoots returns the root nodes of the default scene.
func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	scene := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		scene = *doc.Scene
	}
	return doc.Scenes[scene].Nodes
}

// maxNodeDepth bounds recursion on malformed (cyclic) node graphs.
const maxNodeDepth = 64

func walkNode(doc *gltf.Document, idx int, parent mgl64.Mat4, mesh *Mesh, depth int) error {
	if depth > maxNodeDepth || idx < 0 || idx >= len(doc.Nodes) {
		return nil
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		m := doc.Meshes[*node.Mesh]
		if err := appendMesh(doc, m, world, mesh); err != nil {
			return fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	for _, child := range node.Children {
		if err := walkNode(doc, child, world, mesh, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the local transform of a node, from its matrix or TRS.
func nodeMatrix(n *gltf.Node) mgl64.Mat4 {
	if n.Matrix != [16]float64{} && mgl64.Mat4(n.Matrix) != mgl64.Ident4() {
		return mgl64.Mat4(n.Matrix)
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()

	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// appendMesh extracts triangle geometry from a GLTF mesh into mesh.
func appendMesh(doc *gltf.Document, m *gltf.Mesh, world mgl64.Mat4, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || posIdx >= len(doc.Accessors) {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Positions)
		for _, p := range positions {
			v := mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
			mesh.Positions = append(mesh.Positions, mgl64.TransformCoordinate(v, world))
		}

		if prim.Indices != nil && *prim.Indices < len(doc.Accessors) {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				if int(idx) >= len(positions) {
					return fmt.Errorf("read indices: index %d out of range for %d positions: %w",
						idx, len(positions), ErrNoGeometry)
				}
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					base + int(indices[i]),
					base + int(indices[i+1]),
					base + int(indices[i+2]),
				})
			}
			continue
		}

		// No indices, assume sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.Faces = append(mesh.Faces, [3]int{base + i, base + i + 1, base + i + 2})
		}
	}

	return nil
}
