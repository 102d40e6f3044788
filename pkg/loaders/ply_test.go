package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

const asciiSquarePLY = `ply
format ascii 1.0
comment unit square split into a quad face
element vertex 4
property float x
property float y
property float z
property uchar red
element face 1
property list uchar int vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0 255
1 0 0 255
1 1 0 255
0 1 0 255
4 0 1 2 3
0 2
`

// binarySquarePLY encodes two triangles over the unit square with the given byte order
func binarySquarePLY(t *testing.T, order binary.ByteOrder, format string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property float nx\n")
	buf.WriteString("element face 2\n")
	buf.WriteString("property uchar flags\n")
	buf.WriteString("property list uchar uint vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][4]float32{
		{0, 0, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 0, 1},
		{0, 1, 0, 1},
	}
	for _, v := range vertices {
		if err := binary.Write(&buf, order, v); err != nil {
			t.Fatalf("Failed to write vertex: %v", err)
		}
	}

	faces := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		buf.WriteByte(7) // flags
		buf.WriteByte(3) // index count
		if err := binary.Write(&buf, order, f); err != nil {
			t.Fatalf("Failed to write face: %v", err)
		}
	}

	return buf.Bytes()
}

func checkSquareMesh(t *testing.T, mesh *PLYMesh) {
	t.Helper()

	if len(mesh.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	if !mesh.Vertices[2].Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Expected vertex 2 at (1, 1, 0), got %v", mesh.Vertices[2])
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	for i, index := range expectedFaces {
		if mesh.Faces[i] != index {
			t.Errorf("Face index %d: expected %d, got %d", i, index, mesh.Faces[i])
		}
	}
}

func TestReadPLY_ASCII(t *testing.T) {
	mesh, err := ReadPLY(strings.NewReader(asciiSquarePLY))
	if err != nil {
		t.Fatalf("ReadPLY failed: %v", err)
	}
	checkSquareMesh(t, mesh)
}

func TestReadPLY_Binary(t *testing.T) {
	tests := []struct {
		name   string
		order  binary.ByteOrder
		format string
	}{
		{"little endian", binary.LittleEndian, "binary_little_endian"},
		{"big endian", binary.BigEndian, "binary_big_endian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ReadPLY(bytes.NewReader(binarySquarePLY(t, tt.order, tt.format)))
			if err != nil {
				t.Fatalf("ReadPLY failed: %v", err)
			}
			checkSquareMesh(t, mesh)
		})
	}
}

func TestReadPLY_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"unterminated header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"unsupported property type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"missing z", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n0 0\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 5\n"},
		{"degenerate face", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
			"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n2 0 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPLY(strings.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, binarySquarePLY(t, binary.LittleEndian, "binary_little_endian"), 0o644); err != nil {
		t.Fatalf("Failed to write PLY file: %v", err)
	}

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	checkSquareMesh(t, mesh)

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
