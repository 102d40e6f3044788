package config

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/loaders"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

var (
	// ErrInvalidMaterialIndex is returned when a shape or composite material
	// refers to a material that does not exist (or, for composites, is not earlier)
	ErrInvalidMaterialIndex = errors.New("invalid material index")

	// ErrInvalidEntry is returned for a material, texture, shape or background
	// with an unknown type or missing or malformed fields
	ErrInvalidEntry = errors.New("invalid scene entry")
)

// Scene converts the file into a scene ready for Preprocess. Every invalid
// entry is reported; textures and meshes are loaded from disk.
func (f *File) Scene() (*scene.Scene, error) {
	var errs []error

	materials := make([]material.Material, len(f.Materials))
	for i, m := range f.Materials {
		mat, err := f.buildMaterial(m, materials[:i])
		if err != nil {
			errs = append(errs, fmt.Errorf("materials[%d]: %w", i, err))
			continue
		}
		materials[i] = mat
	}

	shapes := make([]geometry.Shape, 0, len(f.Shapes))
	for i, s := range f.Shapes {
		shape, err := f.buildShape(s, materials)
		if err != nil {
			errs = append(errs, fmt.Errorf("shapes[%d]: %w", i, err))
			continue
		}
		shapes = append(shapes, shape)
	}

	camera, err := f.Camera.config()
	if err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}

	var background integrator.Background
	if f.Background != nil {
		if background, err = f.Background.build(); err != nil {
			errs = append(errs, fmt.Errorf("background: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &scene.Scene{
		Shapes:         shapes,
		CameraConfig:   camera,
		SamplingConfig: f.Sampling.config(),
		Background:     background,
	}, nil
}

// vec converts a list into a vector, failing unless it has exactly three components
func (v Vec) vec(field string) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidEntry, field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// vecOr is vec with a default for an omitted list
func (v Vec) vecOr(field string, fallback core.Vec3) (core.Vec3, error) {
	if v == nil {
		return fallback, nil
	}
	return v.vec(field)
}

// config merges the overrides into the default camera
func (c Camera) config() (geometry.CameraConfig, error) {
	var errs []error
	vecField := func(v Vec, field string) core.Vec3 {
		if v == nil {
			return core.Vec3{}
		}
		result, err := v.vec(field)
		if err != nil {
			errs = append(errs, err)
		}
		return result
	}

	override := geometry.CameraConfig{
		Center:        vecField(c.LookFrom, "look_from"),
		LookAt:        vecField(c.LookAt, "look_at"),
		Up:            vecField(c.Up, "up"),
		Width:         c.Width,
		AspectRatio:   c.AspectRatio,
		VFov:          c.VFov,
		DefocusAngle:  c.DefocusAngle,
		FocusDistance: c.FocusDistance,
	}
	config := geometry.MergeCameraConfig(geometry.DefaultCameraConfig(), override)

	// A look-from at the origin is the default anyway; an explicit look-at of the
	// origin must not be swallowed by the merge
	if c.LookAt != nil && override.LookAt == (core.Vec3{}) {
		config.LookAt = core.Vec3{}
	}

	return config, errors.Join(errs...)
}

// config fills omitted fields from the defaults
func (s Sampling) config() scene.SamplingConfig {
	config := scene.DefaultSamplingConfig()
	if s.SamplesPerPixel != 0 {
		config.SamplesPerPixel = s.SamplesPerPixel
	}
	if s.MaxDepth != 0 {
		config.MaxDepth = s.MaxDepth
	}
	return config
}

func (b Background) build() (integrator.Background, error) {
	switch b.Type {
	case "", "sky":
		return integrator.NewSkyBackground(), nil
	case "solid":
		color, err := b.Color.vec("color")
		if err != nil {
			return nil, err
		}
		return integrator.NewSolidBackground(color), nil
	case "gradient":
		top, err := b.Top.vec("top")
		if err != nil {
			return nil, err
		}
		bottom, err := b.Bottom.vec("bottom")
		if err != nil {
			return nil, err
		}
		return &integrator.GradientBackground{Top: top, Bottom: bottom}, nil
	default:
		return nil, fmt.Errorf("%w: unknown background type %q", ErrInvalidEntry, b.Type)
	}
}

// materialRef resolves a composite's reference to an earlier material
func materialRef(index *int, field string, earlier []material.Material) (material.Material, error) {
	if index == nil {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidEntry, field)
	}
	if *index < 0 || *index >= len(earlier) {
		return nil, fmt.Errorf("%w: %s = %d must refer to one of the %d earlier materials", ErrInvalidMaterialIndex, field, *index, len(earlier))
	}
	if earlier[*index] == nil {
		return nil, fmt.Errorf("%w: %s = %d refers to an invalid material", ErrInvalidMaterialIndex, field, *index)
	}
	return earlier[*index], nil
}

func (f *File) buildMaterial(m Material, earlier []material.Material) (material.Material, error) {
	switch m.Type {
	case "lambertian":
		if m.Texture != nil {
			texture, err := f.buildTexture(*m.Texture)
			if err != nil {
				return nil, err
			}
			return material.NewTexturedLambertian(texture), nil
		}
		albedo, err := m.Albedo.vec("albedo")
		if err != nil {
			return nil, err
		}
		return material.NewLambertian(albedo), nil
	case "metal":
		albedo, err := m.Albedo.vec("albedo")
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, m.Fuzz), nil
	case "dielectric":
		if !(m.IOR > 0) {
			return nil, fmt.Errorf("%w: ior must be positive, got %g", ErrInvalidEntry, m.IOR)
		}
		return material.NewDielectric(m.IOR), nil
	case "light":
		emission, err := m.Emission.vec("emission")
		if err != nil {
			return nil, err
		}
		return material.NewDiffuseLight(emission), nil
	case "mix", "layered":
		first, err := materialRef(m.First, "first", earlier)
		if err != nil {
			return nil, err
		}
		second, err := materialRef(m.Second, "second", earlier)
		if err != nil {
			return nil, err
		}
		if m.Type == "mix" {
			return material.NewMix(first, second, m.Ratio), nil
		}
		return material.NewLayered(first, second), nil
	default:
		return nil, fmt.Errorf("%w: unknown material type %q", ErrInvalidEntry, m.Type)
	}
}

func (f *File) buildTexture(t Texture) (material.ColorSource, error) {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	if !(scale > 0) {
		return nil, fmt.Errorf("%w: texture scale must be positive, got %g", ErrInvalidEntry, t.Scale)
	}

	switch t.Type {
	case "checker", "spatial_checker":
		even, err := t.Even.vec("even")
		if err != nil {
			return nil, err
		}
		odd, err := t.Odd.vec("odd")
		if err != nil {
			return nil, err
		}
		if t.Type == "checker" {
			return material.NewCheckerTexture(scale, even, odd), nil
		}
		return material.NewSpatialCheckerTexture(scale, even, odd), nil
	case "image":
		if t.Path == "" {
			return nil, fmt.Errorf("%w: image texture needs a path", ErrInvalidEntry)
		}
		path, err := f.resolvePath(t.Path)
		if err != nil {
			return nil, err
		}
		img, err := loaders.LoadImage(path)
		if err != nil {
			return nil, err
		}
		fill, err := t.Fill.vecOr("fill", core.Vec3{})
		if err != nil {
			return nil, err
		}
		return material.NewImageTextureFromImage(img, scale, material.NewSolidColor(fill)), nil
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidEntry, t.Type)
	}
}

func (f *File) buildShape(s Shape, materials []material.Material) (geometry.Shape, error) {
	if s.Material < 0 || s.Material >= len(materials) {
		return nil, fmt.Errorf("%w: material = %d, have %d materials", ErrInvalidMaterialIndex, s.Material, len(materials))
	}
	mat := materials[s.Material]
	if mat == nil {
		return nil, fmt.Errorf("%w: material = %d refers to an invalid material", ErrInvalidMaterialIndex, s.Material)
	}

	shape, err := f.buildPrimitive(s, mat)
	if err != nil {
		return nil, err
	}

	for _, r := range s.Rotate {
		axis, err := geometry.ParseAxis(r.Axis)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
		shape = geometry.NewRotation(shape, axis, r.Degrees)
	}

	if s.Translate != nil {
		offset, err := s.Translate.vec("translate")
		if err != nil {
			return nil, err
		}
		shape = geometry.NewTranslation(shape, offset)
	}

	return shape, nil
}

func (f *File) buildPrimitive(s Shape, mat material.Material) (geometry.Shape, error) {
	switch s.Type {
	case "sphere":
		center, err := s.Center.vec("center")
		if err != nil {
			return nil, err
		}
		if s.Radius == 0 {
			return nil, fmt.Errorf("%w: sphere radius must not be zero", ErrInvalidEntry)
		}
		return geometry.NewSphere(center, s.Radius, mat), nil
	case "quad", "triangle":
		corner, err := s.Corner.vec("corner")
		if err != nil {
			return nil, err
		}
		u, err := s.U.vec("u")
		if err != nil {
			return nil, err
		}
		v, err := s.V.vec("v")
		if err != nil {
			return nil, err
		}
		if u.Cross(v).NearZero() {
			return nil, fmt.Errorf("%w: %s edges u and v must not be parallel", ErrInvalidEntry, s.Type)
		}
		if s.Type == "quad" {
			return geometry.NewQuad(corner, u, v, mat), nil
		}
		return geometry.NewTriangle(corner, u, v, mat), nil
	case "disc":
		center, err := s.Center.vec("center")
		if err != nil {
			return nil, err
		}
		u, err := s.U.vecOr("u", core.NewVec3(1, 0, 0))
		if err != nil {
			return nil, err
		}
		v, err := s.V.vecOr("v", core.NewVec3(0, 1, 0))
		if err != nil {
			return nil, err
		}
		if !(s.Radius > 0) {
			return nil, fmt.Errorf("%w: disc radius must be positive, got %g", ErrInvalidEntry, s.Radius)
		}
		if u.Cross(v).NearZero() {
			return nil, fmt.Errorf("%w: disc axes u and v must not be parallel", ErrInvalidEntry)
		}
		return geometry.NewDisc(center, u, v, s.Radius, mat), nil
	case "box":
		a, err := s.Min.vec("min")
		if err != nil {
			return nil, err
		}
		b, err := s.Max.vec("max")
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(a, b, mat), nil
	case "mesh":
		if s.Path == "" {
			return nil, fmt.Errorf("%w: mesh needs a path", ErrInvalidEntry)
		}
		path, err := f.resolvePath(s.Path)
		if err != nil {
			return nil, err
		}
		ply, err := loaders.LoadPLY(path)
		if err != nil {
			return nil, err
		}
		mesh, err := geometry.NewTriangleMesh(ply.Vertices, ply.Faces, mat, nil)
		if err != nil {
			return nil, err
		}
		return mesh, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidEntry, s.Type)
	}
}
