package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),    // Standard up direction
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0, // Narrower field of view for focus effect
		DefocusAngle:  0.6,
		FocusDistance: 3.2, // Distance to the center sphere
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
		Background:     integrator.NewSkyBackground(),
	}

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Glass coating over a red base
	coatedRed := material.NewLayered(materialGlass, lambertianRed)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
		// Large but finite ground so the BVH has proper bounds
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen),
	)

	// Hollow glass sphere with a blue sphere inside; the negative radius flips the inner normals
	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
	)

	// Distant warm sun
	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0))

	return s
}

// NewSphereOverGroundScene creates the minimal scene: one diffuse sphere resting
// on a very large ground sphere under the sky, seen from the default camera
func NewSphereOverGroundScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	return &Scene{
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		},
		CameraConfig:   cameraConfig(geometry.DefaultCameraConfig(), cameraOverrides),
		SamplingConfig: DefaultSamplingConfig(),
		Background:     integrator.NewSkyBackground(),
	}
}
