package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gowire/pkg/geometry"
)

// ErrMalformed is wrapped by every parse error caused by bad file content
var ErrMalformed = errors.New("malformed STL")

// ParseFile reads an ASCII or binary STL file
func ParseFile(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads an STL model from r. Input starting with "solid" followed
// by a facet is treated as ASCII, anything else as binary.
func Parse(r io.Reader) (*Model, error) {
	reader := bufio.NewReader(r)
	head, err := reader.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	// binary exporters like to start their 80 byte header with "solid" too
	if bytes.HasPrefix(head, []byte("solid")) && (bytes.Contains(head, []byte("facet")) || bytes.Contains(head, []byte("endsolid"))) {
		return parseASCII(reader)
	}
	return parseBinary(reader)
}

func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var normal geometry.Vector3
	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("%w: line %d: expected 'facet normal x y z'", ErrMalformed, lineNo)
			}
			v, err := parseVector(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
			}
			normal = v

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: expected 'vertex x y z'", ErrMalformed, lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrMalformed, lineNo, len(vertices))
			}
			triangle, err := newTriangle(normal, vertices[0], vertices[1], vertices[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			model.AddTriangle(triangle)
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return model, nil
}

// newTriangle rejects non-finite coordinates and recomputes a normal the
// exporter left zero or broken
func newTriangle(normal, v1, v2, v3 geometry.Vector3) (geometry.Triangle, error) {
	for _, v := range [3]geometry.Vector3{v1, v2, v3} {
		if !v.IsFinite() {
			return geometry.Triangle{}, fmt.Errorf("%w: vertex %v is not finite", ErrMalformed, v)
		}
	}
	t := geometry.NewTriangle(normal, v1, v2, v3)
	if !normal.IsFinite() || normal.Length() == 0 {
		t.Normal = t.CalculateNormal()
	}
	return t, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var xyz [3]float64
	for i, f := range fields {
		value, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		xyz[i] = value
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

// binaryFacet is the 50 byte record of a binary STL file
type binaryFacet struct {
	Normal     [3]float32
	Vertices   [3][3]float32
	Attributes uint16
}

func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrMalformed, err)
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: failed to read triangle count: %v", ErrMalformed, err)
	}

	for i := uint32(0); i < count; i++ {
		var facet binaryFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("%w: failed to read triangle %d of %d: %v", ErrMalformed, i, count, err)
		}
		triangle, err := newTriangle(
			vector(facet.Normal),
			vector(facet.Vertices[0]),
			vector(facet.Vertices[1]),
			vector(facet.Vertices[2]),
		)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		model.AddTriangle(triangle)
	}
	return model, nil
}

func vector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
