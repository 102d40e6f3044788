package scene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

var (
	// ErrEmptyScene is returned when a scene has nothing to render
	ErrEmptyScene = errors.New("scene has no shapes")
	// ErrDegenerateShape is returned for a shape whose bounds are NaN or infinite
	ErrDegenerateShape = errors.New("degenerate shape")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Shapes         []geometry.Shape      // Objects in the scene
	CameraConfig   geometry.CameraConfig // Camera settings, turned into Camera by Preprocess
	SamplingConfig SamplingConfig        // Samples and bounce limit
	Background     integrator.Background // Radiance for rays that escape; nil means sky

	// Built by Preprocess
	Camera *geometry.Camera
	BVH    *geometry.BVH // Acceleration structure for ray-object intersection
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the default sample and bounce counts
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        20,
	}
}

// Validate checks the sampling configuration
func (c SamplingConfig) Validate() error {
	var errs []error
	if c.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("%w: samples per pixel must be at least 1, got %d", renderer.ErrInvalidSampling, c.SamplesPerPixel))
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("%w: max depth must be at least 1, got %d", renderer.ErrInvalidSampling, c.MaxDepth))
	}
	return errors.Join(errs...)
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	// Create corner at the far-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z+size/2)
	// u × v = (size,0,0) × (0,0,-size) = (0,size²,0) which normalizes to (0,1,0)
	u := core.NewVec3(size, 0, 0)
	v := core.NewVec3(0, 0, -size)
	return geometry.NewQuad(corner, u, v, material)
}

// Preprocess validates the scene and builds the camera and BVH once.
// All problems are reported together. A nil logger discards output.
func (s *Scene) Preprocess(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var errs []error
	if len(s.Shapes) == 0 {
		errs = append(errs, ErrEmptyScene)
	}
	for i, shape := range s.Shapes {
		if box := shape.BoundingBox(); !box.IsFinite() {
			errs = append(errs, fmt.Errorf("%w: shape %d has bounds %v", ErrDegenerateShape, i, box))
		}
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		errs = append(errs, err)
	}
	camera, err := geometry.NewCamera(s.CameraConfig)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}

	if s.Background == nil {
		s.Background = integrator.NewSkyBackground()
	}
	s.Camera = camera
	s.BVH = geometry.NewBVH(s.Shapes)

	stats := s.BVH.Stats()
	logger.Debug("bvh built",
		"nodes", stats.TotalNodes,
		"leaves", stats.LeafNodes,
		"max_depth", stats.MaxDepth,
		"avg_depth", stats.AvgDepth,
	)
	logger.Info("scene ready",
		"shapes", len(s.Shapes),
		"primitives", s.GetPrimitiveCount(),
		"width", camera.ImageWidth(),
		"height", camera.ImageHeight(),
	)

	return nil
}

// Integrator returns a path tracer for the scene's bounce limit and background
func (s *Scene) Integrator() *integrator.PathTracingIntegrator {
	return integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth, s.Background)
}

// RenderConfig returns renderer defaults with the scene's sample count
func (s *Scene) RenderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	return config
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling complex objects
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		// Triangle meshes contain multiple triangles
		return obj.TriangleCount()
	case *geometry.BVH:
		return obj.Stats().TotalShapes
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}

// AddSphereLight adds a spherical area light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewSphere(center, radius, material.NewDiffuseLight(emission)))
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Shapes = append(s.Shapes, geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission)))
}

// cameraConfig merges the first override, if any, into a scene's default camera
func cameraConfig(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) > 0 {
		return geometry.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
