package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewPlanarScene creates an open box of five coloured quads around a quad, a
// triangle, a disc and a sphere with checker, mixed and coated materials
func NewPlanarScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 9),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          80.0,
		DefocusAngle:  0.0,
		FocusDistance: 9.0,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50},
		Background:     integrator.NewSkyBackground(),
	}

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	// Walls of the open box
	s.Shapes = append(s.Shapes,
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	// Textured planar primitives in front of the back wall
	checker := material.NewTexturedLambertian(material.NewCheckerTexture(8, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.1, 0.1, 0.1)))
	spatial := material.NewTexturedLambertian(material.NewSpatialCheckerTexture(0.25, core.NewVec3(0.9, 0.8, 0.1), core.NewVec3(0.2, 0.1, 0.6)))
	brushed := material.NewMix(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.05), material.NewLambertian(core.NewVec3(0.8, 0.3, 0.3)), 0.4)
	coated := material.NewLayered(material.NewDielectric(1.5), material.NewLambertian(core.NewVec3(0.1, 0.3, 0.8)))

	s.Shapes = append(s.Shapes,
		geometry.NewQuad(core.NewVec3(-1.75, 0.25, 1), core.NewVec3(1.5, 0, 0), core.NewVec3(0, 1.5, 0), checker),
		geometry.NewTriangle(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1.5, 0, 0), core.NewVec3(0, 1.5, 0), spatial),
		geometry.NewDisc(core.NewVec3(-1, -1, 1.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 0.75, brushed),
		geometry.NewSphere(core.NewVec3(1, -1, 1.5), 0.75, coated),
	)

	return s
}

// NewLightScene creates a dark scene lit only by an emissive sphere and an
// emissive quad above checkered spheres
func NewLightScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(-1, 3, 6),
		LookAt:        core.NewVec3(0, 2, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   16.0 / 9.0,
		VFov:          80.0,
		DefocusAngle:  0.0,
		FocusDistance: 1.0,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 30},
		Background:     integrator.NewSolidBackground(core.Vec3{}),
	}

	checkeredRed := material.NewTexturedLambertian(material.NewCheckerTexture(30, core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	checkeredGround := material.NewTexturedLambertian(material.NewCheckerTexture(20, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	light := core.NewVec3(4, 4, 4)

	s.AddSphereLight(core.NewVec3(0, 7.5, -1), 2.5, light)
	s.AddQuadLight(core.NewVec3(2.5, 1.5, -2), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), light)
	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 2, -1), 2.0, checkeredRed),
		geometry.NewSphere(core.NewVec3(0, -1000.5, -1), 1000, checkeredGround),
	)

	return s
}
