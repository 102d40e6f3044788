package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ErrInvalidPLY is returned for PLY data that cannot be turned into a triangle mesh
var ErrInvalidPLY = errors.New("invalid PLY data")

// PLYMesh contains the triangle geometry read from a PLY file
type PLYMesh struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle); polygons are fan-triangulated
}

// TriangleCount returns the number of triangles in the mesh
func (m *PLYMesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// plyHeader represents the parsed header of a PLY file
type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// plyElement is one element block, such as vertex or face, in file order
type plyElement struct {
	Name       string
	Count      int
	Properties []plyProperty
}

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // For list properties, the type of the count
}

// LoadPLY loads a PLY file (ASCII or binary) and returns its triangles
func LoadPLY(filename string) (*PLYMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY reads PLY data from r. Vertex positions come from the x, y and z
// properties; faces come from the vertex_indices (or vertex_index) list.
// Other elements and properties are skipped.
func ReadPLY(r io.Reader) (*PLYMesh, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	mesh := &PLYMesh{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, mesh)
		case "face":
			err = readFaces(values, element, mesh)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, err
		}
	}

	for i, index := range mesh.Faces {
		if index < 0 || index >= len(mesh.Vertices) {
			return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidPLY, i/3, index, len(mesh.Vertices))
		}
	}

	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(br *bufio.Reader) (*plyHeader, error) {
	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic number", ErrInvalidPLY)
	}

	header := &plyHeader{}
	for {
		line, err := br.ReadString('\n')
		if err != nil && strings.TrimSpace(line) != "end_header" {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed format line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			header.Format = parts[1]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: malformed element line %q", ErrInvalidPLY, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("%w: invalid list property definition", ErrInvalidPLY)
		}
		prop := plyProperty{IsList: true, CountType: parts[1], Type: parts[2], Name: parts[3]}
		if plyTypeSize(prop.CountType) == 0 || plyTypeSize(prop.Type) == 0 {
			return plyProperty{}, fmt.Errorf("%w: unsupported list types %s %s", ErrInvalidPLY, prop.CountType, prop.Type)
		}
		return prop, nil
	}

	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition", ErrInvalidPLY)
	}
	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("%w: unsupported property type %s", ErrInvalidPLY, parts[0])
	}
	return plyProperty{Type: parts[0], Name: parts[1]}, nil
}

// readVertices reads one position per vertex
func readVertices(values plyValueReader, element plyElement, mesh *PLYMesh) error {
	found := 0
	for _, prop := range element.Properties {
		if !prop.IsList && (prop.Name == "x" || prop.Name == "y" || prop.Name == "z") {
			found++
		}
	}
	if found != 3 {
		return fmt.Errorf("%w: vertex element needs x, y and z properties", ErrInvalidPLY)
	}

	mesh.Vertices = make([]core.Vec3, 0, element.Count)
	for i := 0; i < element.Count; i++ {
		var position core.Vec3
		for _, prop := range element.Properties {
			if prop.IsList {
				if _, err := readList(values, prop); err != nil {
					return fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}

			value, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			switch prop.Name {
			case "x":
				position.X = value
			case "y":
				position.Y = value
			case "z":
				position.Z = value
			}
		}
		mesh.Vertices = append(mesh.Vertices, position)
	}
	return nil
}

// readFaces reads polygon index lists and fan-triangulates them
func readFaces(values plyValueReader, element plyElement, mesh *PLYMesh) error {
	mesh.Faces = make([]int, 0, element.Count*3)
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList {
				if _, err := values.read(prop.Type); err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			indices, err := readList(values, prop)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(indices) < 3 {
				return fmt.Errorf("%w: face %d has %d vertices", ErrInvalidPLY, i, len(indices))
			}

			for k := 1; k+1 < len(indices); k++ {
				mesh.Faces = append(mesh.Faces, int(indices[0]), int(indices[k]), int(indices[k+1]))
			}
		}
	}
	return nil
}

// skipElement consumes every value of an element the mesh does not use
func skipElement(values plyValueReader, element plyElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			var err error
			if prop.IsList {
				_, err = readList(values, prop)
			} else {
				_, err = values.read(prop.Type)
			}
			if err != nil {
				return fmt.Errorf("%s %d: %w", element.Name, i, err)
			}
		}
	}
	return nil
}

// readList reads a count followed by that many items
func readList(values plyValueReader, prop plyProperty) ([]float64, error) {
	count, err := values.read(prop.CountType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, fmt.Errorf("%w: invalid list length %v", ErrInvalidPLY, count)
	}

	items := make([]float64, int(count))
	for i := range items {
		if items[i], err = values.read(prop.Type); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// plyTypeSize returns the size in bytes of a PLY scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// plyValueReader reads one scalar of the given PLY type from the body
type plyValueReader interface {
	read(dataType string) (float64, error)
}

// asciiValueReader reads whitespace-separated values
type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidPLY, io.ErrUnexpectedEOF)
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q", ErrInvalidPLY, dataType, a.scanner.Text())
	}
	return value, nil
}

// binaryValueReader reads fixed-size values in the file's byte order
type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unsupported data type %s", ErrInvalidPLY, dataType)
	}

	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidPLY, err)
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(data[0])), nil
	case "uchar", "uint8":
		return float64(data[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	default:
		return math.Float64frombits(b.order.Uint64(data)), nil
	}
}
