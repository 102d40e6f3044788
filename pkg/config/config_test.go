package config

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

const fullTOML = `# Scene: Everything
[camera]
look_from = [0, 1, 5]
look_at = [0, 0, 0]
width = 32
aspect_ratio = 2.0
vfov = 60

[sampling]
samples_per_pixel = 4

[background]
type = "solid"
color = [0.1, 0.2, 0.3]

[[materials]]
type = "lambertian"
albedo = [0.5, 0.5, 0.5]

[[materials]]
type = "metal"
albedo = [0.8, 0.8, 0.8]
fuzz = 0.1

[[materials]]
type = "dielectric"
ior = 1.5

[[materials]]
type = "light"
emission = [4, 4, 4]

[[materials]]
type = "mix"
first = 0
second = 1
ratio = 0.25

[[materials]]
type = "layered"
first = 2
second = 0

[[materials]]
type = "lambertian"
texture = { type = "checker", scale = 4, even = [1, 1, 1], odd = [0, 0, 0] }

[[materials]]
type = "lambertian"
texture = { type = "image", path = "texture.png", fill = [1, 0, 1] }

[[shapes]]
type = "sphere"
material = 5
center = [0, 0, 0]
radius = 1

[[shapes]]
type = "quad"
material = 6
corner = [-5, -1, 5]
u = [10, 0, 0]
v = [0, 0, -10]

[[shapes]]
type = "triangle"
material = 4
corner = [2, 0, 0]
u = [1, 0, 0]
v = [0, 1, 0]

[[shapes]]
type = "disc"
material = 3
center = [0, 4, 0]
u = [1, 0, 0]
v = [0, 0, 1]
radius = 1

[[shapes]]
type = "box"
material = 1
min = [0, 0, 0]
max = [1, 1, 1]
rotate = [{ axis = "y", degrees = 30 }, { axis = "x", degrees = 10 }]
translate = [-3, 0, 0]

[[shapes]]
type = "mesh"
material = 7
path = "meshes/tri.ply"
translate = [0, 2, 0]
`

const triPLY = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
0 1 0
3 0 1 2
`

// writeAssets creates the texture and mesh referenced by fullTOML
func writeAssets(t *testing.T, dir string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "tri.ply"), []byte(triPLY), 0o644))

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "texture.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeAssets(t, dir)
	path := filepath.Join(dir, "everything.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullTOML), 0o644))

	file, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, file.Materials, 8)
	assert.Len(t, file.Shapes, 6)

	s, err := file.Scene()
	require.NoError(t, err)

	assert.Len(t, s.Shapes, 6)
	assert.Equal(t, scene.SamplingConfig{SamplesPerPixel: 4, MaxDepth: 20}, s.SamplingConfig)
	assert.Equal(t, integrator.NewSolidBackground(core.NewVec3(0.1, 0.2, 0.3)), s.Background)

	assert.Equal(t, core.NewVec3(0, 1, 5), s.CameraConfig.Center)
	assert.Equal(t, core.NewVec3(0, 0, 0), s.CameraConfig.LookAt)
	assert.Equal(t, core.NewVec3(0, 1, 0), s.CameraConfig.Up)
	assert.Equal(t, 32, s.CameraConfig.Width)
	assert.Equal(t, 60.0, s.CameraConfig.VFov)
	assert.Equal(t, 1.0, s.CameraConfig.FocusDistance)

	assert.IsType(t, &geometry.Sphere{}, s.Shapes[0])
	assert.IsType(t, &geometry.Quad{}, s.Shapes[1])
	assert.IsType(t, &geometry.Triangle{}, s.Shapes[2])
	assert.IsType(t, &geometry.Disc{}, s.Shapes[3])
	assert.IsType(t, &geometry.Translation{}, s.Shapes[4])
	assert.IsType(t, &geometry.Translation{}, s.Shapes[5])

	// The mesh was loaded relative to the scene file and moved up by 2
	box := s.Shapes[5].BoundingBox()
	assert.InDelta(t, 2.0, box.Y.Min, 1e-9)
	assert.InDelta(t, 3.0, box.Y.Max, 1e-9)

	require.NoError(t, s.Preprocess(nil))
	assert.Equal(t, 32, s.Camera.ImageWidth())
	assert.Equal(t, 16, s.Camera.ImageHeight())
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "simple.yml")
	content := `# Scene: Simple
camera:
  width: 20
sampling:
  max_depth: 7
materials:
  - type: lambertian
    albedo: [0.8, 0.8, 0.0]
  - type: lambertian
    albedo: [0.1, 0.2, 0.5]
shapes:
  - type: sphere
    material: 0
    center: [0, -100.5, -1]
    radius: 100
  - type: sphere
    material: 1
    center: [0, 0, -1]
    radius: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	file, err := Load(path)
	require.NoError(t, err)

	s, err := file.Scene()
	require.NoError(t, err)
	assert.Len(t, s.Shapes, 2)
	assert.Nil(t, s.Background)
	assert.Equal(t, scene.SamplingConfig{SamplesPerPixel: 50, MaxDepth: 7}, s.SamplingConfig)
	assert.Equal(t, geometry.DefaultCameraConfig().LookAt, s.CameraConfig.LookAt)

	require.NoError(t, s.Preprocess(nil))
	assert.Equal(t, 11, s.Camera.ImageHeight())
}

func TestLoad_HomeDirectory(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "scene.toml"), []byte("[sampling]\nmax_depth = 3\n"), 0o644))

	file, err := Load("~/scene.toml")
	require.NoError(t, err)
	assert.Equal(t, 3, file.Sampling.MaxDepth)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unsupported extension", "scene.json", "{}", ErrUnsupportedFormat},
		{"missing file", "missing.toml", "", os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			_, err := Load(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("[camera]\nwidht = 10\n"), ".toml")
	assert.Error(t, err)

	_, err = Parse([]byte("camera:\n  widht: 10\n"), ".yaml")
	assert.Error(t, err)

	file, err := Parse([]byte(""), ".yaml")
	require.NoError(t, err)
	assert.Empty(t, file.Shapes)
}

func TestScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr []error
	}{
		{
			name:    "shape material out of range",
			content: "materials:\n  - {type: metal, albedo: [1, 1, 1]}\nshapes:\n  - {type: sphere, material: 1, center: [0, 0, 0], radius: 1}\n",
			wantErr: []error{ErrInvalidMaterialIndex},
		},
		{
			name:    "negative material index",
			content: "materials:\n  - {type: metal, albedo: [1, 1, 1]}\nshapes:\n  - {type: sphere, material: -1, center: [0, 0, 0], radius: 1}\n",
			wantErr: []error{ErrInvalidMaterialIndex},
		},
		{
			name:    "composite refers forward",
			content: "materials:\n  - {type: mix, first: 0, second: 1}\n  - {type: metal, albedo: [1, 1, 1]}\n",
			wantErr: []error{ErrInvalidMaterialIndex},
		},
		{
			name:    "composite missing reference",
			content: "materials:\n  - {type: metal, albedo: [1, 1, 1]}\n  - {type: layered, first: 0}\n",
			wantErr: []error{ErrInvalidEntry},
		},
		{
			name:    "short vector",
			content: "materials:\n  - {type: lambertian, albedo: [1, 1]}\n",
			wantErr: []error{ErrInvalidEntry},
		},
		{
			name:    "unknown types",
			content: "materials:\n  - {type: velvet}\n  - {type: metal, albedo: [1, 1, 1]}\nshapes:\n  - {type: torus, material: 1}\nbackground:\n  type: starfield\n",
			wantErr: []error{ErrInvalidEntry},
		},
		{
			name:    "shape using a broken material",
			content: "materials:\n  - {type: dielectric, ior: 0}\nshapes:\n  - {type: sphere, material: 0, center: [0, 0, 0], radius: 1}\n",
			wantErr: []error{ErrInvalidEntry, ErrInvalidMaterialIndex},
		},
		{
			name:    "bad rotation axis and parallel edges",
			content: "materials:\n  - {type: metal, albedo: [1, 1, 1]}\nshapes:\n  - {type: box, material: 0, min: [0, 0, 0], max: [1, 1, 1], rotate: [{axis: w, degrees: 5}]}\n  - {type: quad, material: 0, corner: [0, 0, 0], u: [1, 0, 0], v: [2, 0, 0]}\n",
			wantErr: []error{ErrInvalidEntry},
		},
		{
			name:    "missing mesh file",
			content: "materials:\n  - {type: metal, albedo: [1, 1, 1]}\nshapes:\n  - {type: mesh, material: 0, path: does-not-exist.ply}\n",
			wantErr: []error{os.ErrNotExist},
		},
		{
			name:    "bad camera vector",
			content: "camera:\n  look_from: [1, 2, 3, 4]\n",
			wantErr: []error{ErrInvalidEntry},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Parse([]byte(tt.content), ".yaml")
			require.NoError(t, err)

			s, err := file.Scene()
			require.Error(t, err)
			assert.Nil(t, s)
			for _, want := range tt.wantErr {
				assert.True(t, errors.Is(err, want), "expected %v in %v", want, err)
			}
		})
	}
}

func TestScene_CompositeMaterials(t *testing.T) {
	content := `materials:
  - {type: lambertian, albedo: [1, 0, 0]}
  - {type: metal, albedo: [0, 1, 0], fuzz: 0}
  - {type: mix, first: 0, second: 1, ratio: 1.5}
shapes:
  - {type: sphere, material: 2, center: [0, 0, -1], radius: 0.5}
`
	file, err := Parse([]byte(content), ".yaml")
	require.NoError(t, err)
	s, err := file.Scene()
	require.NoError(t, err)

	hit, ok := s.Shapes[0].Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.NewInterval(0.001, 10))
	require.True(t, ok)

	mix, ok := hit.Material.(*material.Mix)
	require.True(t, ok)
	assert.Equal(t, 1.0, mix.Ratio)
}

func TestOpenScene(t *testing.T) {
	dir := t.TempDir()
	content := "# Scene: Lonely Sphere\nmaterials:\n  - {type: lambertian, albedo: [0.5, 0.5, 0.5]}\nshapes:\n  - {type: sphere, material: 0, center: [0, 0, -1], radius: 0.5}\n"
	path := filepath.Join(dir, "lonely.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	override := geometry.CameraConfig{Width: 24}

	t.Run("built-in", func(t *testing.T) {
		s, err := OpenScene("cornell-box", dir, override)
		require.NoError(t, err)
		assert.Equal(t, 24, s.CameraConfig.Width)
		assert.Len(t, s.Shapes, 8)
	})

	t.Run("scenes directory", func(t *testing.T) {
		s, err := OpenScene("file:lonely", dir, override)
		require.NoError(t, err)
		assert.Equal(t, 24, s.CameraConfig.Width)
		assert.Len(t, s.Shapes, 1)
	})

	t.Run("path", func(t *testing.T) {
		s, err := OpenScene(path, "", geometry.CameraConfig{})
		require.NoError(t, err)
		assert.Equal(t, geometry.DefaultCameraConfig().Width, s.CameraConfig.Width)
		require.NoError(t, s.Preprocess(nil))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenScene("file:missing", dir, override)
		assert.ErrorIs(t, err, scene.ErrUnknownScene)

		_, err = OpenScene("no-such-scene", dir, override)
		assert.ErrorIs(t, err, scene.ErrUnknownScene)
	})

	t.Run("ids only", func(t *testing.T) {
		s, err := OpenSceneID("file:lonely", dir, override)
		require.NoError(t, err)
		assert.Len(t, s.Shapes, 1)

		_, err = OpenSceneID(path, dir, override)
		assert.ErrorIs(t, err, scene.ErrUnknownScene)

		_, err = OpenSceneID(filepath.Join(dir, "missing.yaml"), dir, override)
		assert.ErrorIs(t, err, scene.ErrUnknownScene)
	})
}
