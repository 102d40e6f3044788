package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box: quad walls, a ceiling light
// and two rotated boxes, lit only by the light
func NewCornellScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:        core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:            core.NewVec3(0, 1, 0),        // Standard up direction
		Width:         400,
		AspectRatio:   1.0,  // Square aspect ratio for Cornell box
		VFov:          40.0, // Field of view
		DefocusAngle:  0.0,  // No depth of field for Cornell box
		FocusDistance: 10.0,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 200, MaxDepth: 50},
		Background:     integrator.NewSolidBackground(core.Vec3{}), // Black background
	}

	// Create materials
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	size := cornellBoxSize
	s.Shapes = append(s.Shapes,
		// Left wall (green) - YZ plane at x=size
		geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green),
		// Right wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), red),
		// Floor (white) - XZ plane at y=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white),
		// Ceiling (white) - XZ plane at y=size
		geometry.NewQuad(core.NewVec3(size, size, size), core.NewVec3(-size, 0, 0), core.NewVec3(0, 0, -size), white),
		// Back wall (white) - XY plane at z=size
		geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white),
	)

	// Ceiling light (smaller quad in the center of the ceiling, slightly below it)
	s.AddQuadLight(
		core.NewVec3(343, size-1, 332),
		core.NewVec3(-130, 0, 0),
		core.NewVec3(0, 0, -105),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	// Tall box turned towards the right wall, short box turned the other way
	tallBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	s.Shapes = append(s.Shapes, geometry.NewTranslation(
		geometry.NewRotation(tallBox, geometry.AxisY, 15),
		core.NewVec3(265, 0, 295),
	))

	shortBox := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	s.Shapes = append(s.Shapes, geometry.NewTranslation(
		geometry.NewRotation(shortBox, geometry.AxisY, -18),
		core.NewVec3(130, 0, 65),
	))

	return s
}
