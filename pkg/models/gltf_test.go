package models

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// writeQuadGLB writes a two-triangle unit quad, translated by (tx, 0, 0).
func writeQuadGLB(t *testing.T, tx float64) string {
	t.Helper()
	return writeGLB(t, tx, []uint16{0, 1, 2, 0, 2, 3})
}

func writeGLB(t *testing.T, tx float64, indices []uint16) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	})
	idx := modeler.WriteIndices(doc, indices)

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{
		Name:        "quad",
		Mesh:        gltf.Index(0),
		Translation: [3]float64{tx, 0, 0},
	}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := LoadGLB("model.fbx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if loader.Extent != 2 {
		t.Errorf("Extent should default to 2, got %v", loader.Extent)
	}
}

func TestLoadGLBQuad(t *testing.T) {
	path := writeQuadGLB(t, 5)

	loader := &GLTFLoader{} // keep asset units
	mesh, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	// Node translation is baked into positions
	if math.Abs(mesh.BoundsMin.X()-5) > 1e-6 || math.Abs(mesh.BoundsMax.X()-6) > 1e-6 {
		t.Errorf("bounds X = [%v, %v], want [5, 6]", mesh.BoundsMin.X(), mesh.BoundsMax.X())
	}
}

func TestLoadGLBFitsExtent(t *testing.T) {
	path := writeQuadGLB(t, 5)

	mesh, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}

	size := mesh.Size()
	if math.Abs(max(size.X(), size.Y(), size.Z())-2) > 1e-6 {
		t.Errorf("largest dimension = %v, want 2", size)
	}
	if mesh.Center().Len() > 1e-6 {
		t.Errorf("center = %v, want origin", mesh.Center())
	}
}

func TestLoadGLBRejectsOutOfRangeIndex(t *testing.T) {
	path := writeGLB(t, 0, []uint16{0, 1, 2, 0, 2, 9})

	mesh, err := LoadGLB(path)
	if !errors.Is(err, ErrNoGeometry) {
		t.Fatalf("err = %v, want ErrNoGeometry", err)
	}
	if mesh != nil {
		t.Error("a malformed model should not produce a mesh")
	}
}
