// Package config reads declarative scene files. A file lists materials and
// shapes; shapes refer to materials by their index in the materials list.
// TOML (.toml) and YAML (.yaml, .yml) files share the same schema.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported scene file format")

// File is the parsed form of a scene file
type File struct {
	Camera     Camera      `toml:"camera" yaml:"camera"`
	Sampling   Sampling    `toml:"sampling" yaml:"sampling"`
	Background *Background `toml:"background" yaml:"background"`
	Materials  []Material  `toml:"materials" yaml:"materials"`
	Shapes     []Shape     `toml:"shapes" yaml:"shapes"`

	// dir resolves relative texture and mesh paths
	dir string
}

// Vec is a three component vector written as a list, e.g. [0, 1, 0]
type Vec []float64

// Camera overrides fields of the default camera; omitted fields keep their defaults
type Camera struct {
	LookFrom      Vec     `toml:"look_from" yaml:"look_from"`
	LookAt        Vec     `toml:"look_at" yaml:"look_at"`
	Up            Vec     `toml:"up" yaml:"up"`
	Width         int     `toml:"width" yaml:"width"`
	AspectRatio   float64 `toml:"aspect_ratio" yaml:"aspect_ratio"`
	VFov          float64 `toml:"vfov" yaml:"vfov"`
	DefocusAngle  float64 `toml:"defocus_angle" yaml:"defocus_angle"`
	FocusDistance float64 `toml:"focus_distance" yaml:"focus_distance"`
}

// Sampling overrides the default sample and bounce counts
type Sampling struct {
	SamplesPerPixel int `toml:"samples_per_pixel" yaml:"samples_per_pixel"`
	MaxDepth        int `toml:"max_depth" yaml:"max_depth"`
}

// Background selects the radiance of escaping rays: "sky" (default),
// "gradient" (Top over Bottom) or "solid" (Color)
type Background struct {
	Type   string `toml:"type" yaml:"type"`
	Color  Vec    `toml:"color" yaml:"color"`
	Top    Vec    `toml:"top" yaml:"top"`
	Bottom Vec    `toml:"bottom" yaml:"bottom"`
}

// Material describes one entry of the materials list. Type is one of
// lambertian, metal, dielectric, light, mix or layered.
type Material struct {
	Type     string   `toml:"type" yaml:"type"`
	Albedo   Vec      `toml:"albedo" yaml:"albedo"`     // lambertian, metal
	Texture  *Texture `toml:"texture" yaml:"texture"`   // lambertian, replaces albedo
	Fuzz     float64  `toml:"fuzz" yaml:"fuzz"`         // metal
	IOR      float64  `toml:"ior" yaml:"ior"`           // dielectric
	Emission Vec      `toml:"emission" yaml:"emission"` // light
	First    *int     `toml:"first" yaml:"first"`       // mix, layered (outer): index of an earlier material
	Second   *int     `toml:"second" yaml:"second"`     // mix, layered (inner): index of an earlier material
	Ratio    float64  `toml:"ratio" yaml:"ratio"`       // mix: probability of Second
}

// Texture describes a lambertian albedo texture. Type is one of checker,
// spatial_checker or image.
type Texture struct {
	Type  string  `toml:"type" yaml:"type"`
	Scale float64 `toml:"scale" yaml:"scale"` // checks per uv unit, cube size, or image zoom
	Even  Vec     `toml:"even" yaml:"even"`
	Odd   Vec     `toml:"odd" yaml:"odd"`
	Path  string  `toml:"path" yaml:"path"` // image file, relative to the scene file
	Fill  Vec     `toml:"fill" yaml:"fill"` // image color outside [0,1] uv
}

// Shape describes one entry of the shapes list. Type is one of sphere, quad,
// triangle, disc, box or mesh.
type Shape struct {
	Type     string  `toml:"type" yaml:"type"`
	Material int     `toml:"material" yaml:"material"`
	Center   Vec     `toml:"center" yaml:"center"` // sphere, disc
	Radius   float64 `toml:"radius" yaml:"radius"` // sphere, disc
	Corner   Vec     `toml:"corner" yaml:"corner"` // quad, triangle
	U        Vec     `toml:"u" yaml:"u"`           // quad, triangle, disc
	V        Vec     `toml:"v" yaml:"v"`           // quad, triangle, disc
	Min      Vec     `toml:"min" yaml:"min"`       // box
	Max      Vec     `toml:"max" yaml:"max"`       // box
	Path     string  `toml:"path" yaml:"path"`     // mesh: PLY file, relative to the scene file

	Rotate    []Rotation `toml:"rotate" yaml:"rotate"`       // applied in order, before Translate
	Translate Vec        `toml:"translate" yaml:"translate"` // applied last
}

// Rotation turns a shape about a coordinate axis ("x", "y" or "z")
type Rotation struct {
	Axis    string  `toml:"axis" yaml:"axis"`
	Degrees float64 `toml:"degrees" yaml:"degrees"`
}

// Load reads a scene file. A leading ~ is expanded to the home directory and
// the extension picks the format. Unknown keys are rejected.
func Load(path string) (*File, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	file, err := Parse(data, filepath.Ext(expanded))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	file.dir = filepath.Dir(expanded)

	return file, nil
}

// Parse decodes scene file contents in the format named by ext (".toml", ".yaml" or ".yml").
// Relative paths in the result resolve against the working directory.
func Parse(data []byte, ext string) (*File, error) {
	file := &File{dir: "."}

	switch strings.ToLower(ext) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(file); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(file); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return file, nil
}

// resolvePath expands ~ and makes p relative to the scene file's directory
func (f *File) resolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) {
		return expanded, nil
	}
	return filepath.Join(f.dir, expanded), nil
}
