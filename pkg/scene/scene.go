// Package scene loads meshes from scene description files and STL models.
package scene

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gowire/pkg/config"
	"github.com/philipparndt/gowire/pkg/mesh"
	"github.com/philipparndt/gowire/pkg/openscad"
	"github.com/philipparndt/gowire/pkg/stl"
)

var (
	// ErrUnknownReference means an entry names a coloring, point, edge or
	// face that is not defined
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnsupportedFormat is returned by Load for unknown file extensions
	ErrUnsupportedFormat = errors.New("unsupported scene format")
)

//go:embed cube.yaml
var cubeYAML []byte

// Colors used for STL models
var (
	stlEdgeColoring = mesh.NewColoring(color.RGBA{64, 64, 64, 255}, color.RGBA{191, 0, 0, 212}, color.RGBA{191, 0, 0, 240})
	stlFaceColoring = mesh.NewColoring(color.RGBA{176, 190, 197, 255}, color.RGBA{191, 0, 0, 212}, color.RGBA{191, 0, 0, 240})
)

// Scene is a set of meshes plus the names their entities were given in
// the source file
type Scene struct {
	Name   string
	Meshes []*mesh.Mesh

	names map[any]string
}

// NameOf returns the name of a point, edge, face or mesh, or "" if it
// has none
func (s *Scene) NameOf(entity any) string {
	if m, ok := entity.(*mesh.Mesh); ok {
		return m.Name
	}
	return s.names[entity]
}

// Load reads a scene file, an STL model or an OpenSCAD source, chosen by
// extension
func Load(path string) (*Scene, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open scene: %w", err)
		}
		defer f.Close()
		s, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.Name = name
		return s, nil

	case ".stl":
		return loadSTL(path, name)

	case ".scad":
		tmp, err := os.CreateTemp("", "gowire-*.stl")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		r := openscad.NewRenderer(filepath.Dir(path))
		if err := r.RenderToSTL(context.Background(), path, tmp.Name()); err != nil {
			return nil, err
		}
		return loadSTL(tmp.Name(), name)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func loadSTL(path, name string) (*Scene, error) {
	model, err := stl.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := stl.ToMesh(model, stl.MeshOptions{
		Name:         name,
		EdgeColoring: stlEdgeColoring,
		FaceColoring: stlFaceColoring,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Scene{Name: name, Meshes: []*mesh.Mesh{m}, names: map[any]string{}}, nil
}

// WatchFiles returns the files whose change should reload path. For
// OpenSCAD sources this includes every use/include dependency.
func WatchFiles(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".scad") {
		return []string{path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(filepath.Base(path))
}

// Cube returns the built-in sample scene
func Cube() *Scene {
	s, err := Parse(bytes.NewReader(cubeYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded cube scene: %v", err))
	}
	s.Name = "cube"
	return s
}

type coloringEntry struct {
	Normal   string `yaml:"normal"`
	Focused  string `yaml:"focused"`
	Selected string `yaml:"selected"`
}

type edgeEntry struct {
	Head     string `yaml:"head"`
	Tail     string `yaml:"tail"`
	Coloring string `yaml:"coloring"`
}

type faceEntry struct {
	Edges    []string `yaml:"edges"`
	Coloring string   `yaml:"coloring"`
}

type meshEntry struct {
	Name       string   `yaml:"name"`
	Points     []string `yaml:"points"`
	Edges      []string `yaml:"edges"`
	Faces      []string `yaml:"faces"`
	Visible    *bool    `yaml:"visible"`
	Focusable  *bool    `yaml:"focusable"`
	Selectable *bool    `yaml:"selectable"`
}

type document struct {
	Colorings map[string]coloringEntry `yaml:"colorings"`
	Points    map[string][3]float64    `yaml:"points"`
	Edges     map[string]edgeEntry     `yaml:"edges"`
	Faces     map[string]faceEntry     `yaml:"faces"`
	Meshes    []meshEntry              `yaml:"meshes"`
}

// Parse decodes a YAML scene description. Entities are referenced by
// name, so an entity used in several places is one shared object.
func Parse(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	b := &builder{
		names:     make(map[any]string),
		colorings: make(map[string]*mesh.Coloring),
		points:    make(map[string]*mesh.Point),
		edges:     make(map[string]*mesh.Edge),
		faces:     make(map[string]*mesh.Face),
	}
	if err := b.build(&doc); err != nil {
		return nil, err
	}
	return &Scene{Meshes: b.meshes, names: b.names}, nil
}

type builder struct {
	names     map[any]string
	colorings map[string]*mesh.Coloring
	points    map[string]*mesh.Point
	edges     map[string]*mesh.Edge
	faces     map[string]*mesh.Face
	meshes    []*mesh.Mesh
}

// sortedKeys keeps error reporting and entity creation deterministic
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (b *builder) build(doc *document) error {
	for _, name := range sortedKeys(doc.Colorings) {
		c, err := parseColoring(doc.Colorings[name])
		if err != nil {
			return fmt.Errorf("coloring %q: %w", name, err)
		}
		b.colorings[name] = c
	}

	for _, name := range sortedKeys(doc.Points) {
		xyz := doc.Points[name]
		p := mesh.NewPoint(xyz[0], xyz[1], xyz[2])
		b.points[name] = p
		b.names[p] = name
	}

	for _, name := range sortedKeys(doc.Edges) {
		entry := doc.Edges[name]
		head, err := lookup(b.points, "point", entry.Head)
		if err != nil {
			return fmt.Errorf("edge %q: %w", name, err)
		}
		tail, err := lookup(b.points, "point", entry.Tail)
		if err != nil {
			return fmt.Errorf("edge %q: %w", name, err)
		}
		coloring, err := b.coloring(entry.Coloring)
		if err != nil {
			return fmt.Errorf("edge %q: %w", name, err)
		}
		e := mesh.NewEdge(coloring, head, tail)
		b.edges[name] = e
		b.names[e] = name
	}

	for _, name := range sortedKeys(doc.Faces) {
		entry := doc.Faces[name]
		edges := make([]*mesh.Edge, 0, len(entry.Edges))
		for _, ref := range entry.Edges {
			e, err := lookup(b.edges, "edge", ref)
			if err != nil {
				return fmt.Errorf("face %q: %w", name, err)
			}
			edges = append(edges, e)
		}
		coloring, err := b.coloring(entry.Coloring)
		if err != nil {
			return fmt.Errorf("face %q: %w", name, err)
		}
		f, err := mesh.NewFace(coloring, edges...)
		if err != nil {
			return fmt.Errorf("face %q: %w", name, err)
		}
		b.faces[name] = f
		b.names[f] = name
	}

	for i, entry := range doc.Meshes {
		m, err := b.mesh(entry)
		if err != nil {
			if entry.Name != "" {
				return fmt.Errorf("mesh %q: %w", entry.Name, err)
			}
			return fmt.Errorf("mesh #%d: %w", i+1, err)
		}
		b.meshes = append(b.meshes, m)
	}
	return nil
}

func (b *builder) mesh(entry meshEntry) (*mesh.Mesh, error) {
	points, err := lookupAll(b.points, "point", entry.Points)
	if err != nil {
		return nil, err
	}
	edges, err := lookupAll(b.edges, "edge", entry.Edges)
	if err != nil {
		return nil, err
	}
	faces, err := lookupAll(b.faces, "face", entry.Faces)
	if err != nil {
		return nil, err
	}

	m := mesh.New(entry.Name)
	m.AddAll(points, edges, faces)
	if entry.Visible != nil {
		m.SetVisible(*entry.Visible)
	}
	if entry.Focusable != nil {
		m.SetFocusable(*entry.Focusable)
	}
	if entry.Selectable != nil {
		m.SetSelectable(*entry.Selectable)
	}
	return m, nil
}

// coloring resolves a coloring reference; an empty name means no color
func (b *builder) coloring(name string) (*mesh.Coloring, error) {
	if name == "" {
		return nil, nil
	}
	return lookup(b.colorings, "coloring", name)
}

func lookup[V any](m map[string]V, kind, name string) (V, error) {
	v, ok := m[name]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownReference, kind, name)
	}
	return v, nil
}

func lookupAll[V any](m map[string]V, kind string, names []string) ([]V, error) {
	values := make([]V, 0, len(names))
	for _, name := range names {
		v, err := lookup(m, kind, name)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseColoring(entry coloringEntry) (*mesh.Coloring, error) {
	var colors [3]color.Color
	for i, hex := range []string{entry.Normal, entry.Focused, entry.Selected} {
		if hex == "" {
			continue
		}
		c, err := config.ParseColor(hex)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	if colors[0] == nil {
		return nil, fmt.Errorf("%w: normal color is required", config.ErrInvalid)
	}
	return mesh.NewColoring(colors[0], colors[1], colors[2]), nil
}
