package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewTextureTestScene creates a scene demonstrating texture mapping on every
// primitive kind, in a single row from left to right
func NewTextureTestScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(0, 2, 10),
		LookAt:        core.NewVec3(0, 1, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          50.0, // Wide enough to see all shapes
		DefocusAngle:  0.0,  // No DOF for texture clarity
		FocusDistance: 10.0,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 100, MaxDepth: 10},
		Background:     integrator.NewSkyBackground(),
	}

	checkerboard := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	uvDebug := material.NewUVDebugTexture(256, 256)
	fineBrickPattern := material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	)

	checkerMat := material.NewTexturedLambertian(checkerboard)
	uvDebugMat := material.NewTexturedLambertian(uvDebug)
	brickMat := material.NewTexturedLambertian(fineBrickPattern)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(-5, 1, 0), 1.0, checkerMat),
		placeOnGround(geometry.NewBox(core.NewVec3(-0.8, 0, -0.8), core.NewVec3(0.8, 1.6, 0.8), uvDebugMat), 30, core.NewVec3(-2.5, 0, 0)),
		// Disc facing the camera
		geometry.NewDisc(core.NewVec3(0, 1.2, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), 0.9, checkerMat),
		// Vertical quad, slightly turned
		geometry.NewQuad(core.NewVec3(1.75, 0, 0.2), core.NewVec3(1.5, 0, -0.3), core.NewVec3(0, 2, 0), uvDebugMat),
		geometry.NewTriangleFromVertices(core.NewVec3(4, 0, 0), core.NewVec3(5.5, 0, 0), core.NewVec3(4.75, 2, 0), uvDebugMat),
		// Ground
		geometry.NewQuad(core.NewVec3(-10, 0, 10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, -15), brickMat),
	)

	s.AddSphereLight(core.NewVec3(0, 8, 5), 2.0, core.NewVec3(20, 20, 20))

	return s
}
