package scene

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := core.DegreesToRadians(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses, then cube
	lCone := math.Pow(l+0.3963377774*a+0.2158037573*b, 3)
	mCone := math.Pow(l-0.1055613458*a-0.0638541728*b, 3)
	sCone := math.Pow(l-0.0894841775*a-1.2914855480*b, 3)

	rgb := core.NewVec3(
		+4.0767416621*lCone-3.3077115913*mCone+0.2309699292*sCone,
		-1.2684380046*lCone+2.6097574011*mCone-0.3413193965*sCone,
		-0.0041960863*lCone-0.7034186147*mCone+1.7076147010*sCone,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a gridSize x gridSize grid of metal spheres whose
// hue varies along X and chroma along Z. Large grids exercise the BVH.
func NewSphereGridScene(gridSize int, cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		DefocusAngle:  0.1,
		FocusDistance: 14.0,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0, gridSize*gridSize+2),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 40},
		Background:     integrator.NewSkyBackground(),
	}

	// Bright sun-like light, high and to the side
	s.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewVec3(12.0, 11.5, 10.0))

	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	if gridSize < 1 {
		return s
	}

	// Fit the grid into the same 9x9 area regardless of its resolution
	targetArea := 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)
	steps := math.Max(1, float64(gridSize-1))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := float64(i) / steps * 360.0
			chroma := minChroma + float64(j)/steps*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness)

			s.Shapes = append(s.Shapes, geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return s
}
