package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry: a
// two-tone box, a pyramid and an icosahedron, each turned about Y and placed
// on the ground
func NewTriangleMeshScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	config := cameraConfig(geometry.CameraConfig{
		Center:        core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:        core.NewVec3(0, 1, 0), // Look at the center of the scene
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   16.0 / 9.0,
		VFov:          45.0,
		DefocusAngle:  0.2, // Slight depth of field
		FocusDistance: 6.1,
	}, cameraOverrides)

	s := &Scene{
		Shapes:         make([]geometry.Shape, 0),
		CameraConfig:   config,
		SamplingConfig: SamplingConfig{SamplesPerPixel: 150, MaxDepth: 40},
		Background:     integrator.NewSkyBackground(),
	}

	// Warm key light and cool fill light
	s.AddSphereLight(core.NewVec3(2, 6, 3), 1.5, core.NewVec3(12.0, 11.0, 10.0))
	s.AddSphereLight(core.NewVec3(-3, 4, 2), 0.8, core.NewVec3(6.0, 7.0, 8.0))

	s.Shapes = append(s.Shapes, NewGroundQuad(core.NewVec3(0, 0, 0), 1000, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))))

	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1)
	whiteMetal := material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.1)
	blueLambertian := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))
	goldMetal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)

	box, err := newBoxMesh(core.NewVec3(1, 1, 1), redMetal, whiteMetal)
	if err != nil {
		return nil, fmt.Errorf("box mesh: %w", err)
	}
	pyramid, err := newPyramidMesh(1.5, 2.0, blueLambertian)
	if err != nil {
		return nil, fmt.Errorf("pyramid mesh: %w", err)
	}
	icosahedron, err := newIcosahedronMesh(0.8, goldMetal)
	if err != nil {
		return nil, fmt.Errorf("icosahedron mesh: %w", err)
	}

	s.Shapes = append(s.Shapes,
		placeOnGround(box, 30, core.NewVec3(-2, 0.5, 0)),
		placeOnGround(pyramid, 45, core.NewVec3(0, 1, 0)),
		placeOnGround(icosahedron, 60, core.NewVec3(2, 0.8, 0)),
	)

	return s, nil
}

// placeOnGround turns a shape built around the origin about Y and moves it to center
func placeOnGround(shape geometry.Shape, degrees float64, center core.Vec3) geometry.Shape {
	return geometry.NewTranslation(geometry.NewRotation(shape, geometry.AxisY, degrees), center)
}

// newBoxMesh creates an axis-aligned box centered at the origin with twelve
// triangles; the two triangles of each face alternate between the materials
func newBoxMesh(size core.Vec3, first, second material.Material) (*geometry.TriangleMesh, error) {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		core.NewVec3(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.NewVec3(+h.X, -h.Y, -h.Z), // 1: right-bottom-back
		core.NewVec3(+h.X, +h.Y, -h.Z), // 2: right-top-back
		core.NewVec3(-h.X, +h.Y, -h.Z), // 3: left-top-back
		core.NewVec3(-h.X, -h.Y, +h.Z), // 4: left-bottom-front
		core.NewVec3(+h.X, -h.Y, +h.Z), // 5: right-bottom-front
		core.NewVec3(+h.X, +h.Y, +h.Z), // 6: right-top-front
		core.NewVec3(-h.X, +h.Y, +h.Z), // 7: left-top-front
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
	}

	materials := make([]material.Material, len(faces)/3)
	for i := range materials {
		materials[i] = first
		if i%2 == 1 {
			materials[i] = second
		}
	}

	return geometry.NewTriangleMesh(vertices, faces, nil, materials)
}

// newPyramidMesh creates a square pyramid centered at the origin
func newPyramidMesh(baseSize, height float64, mat material.Material) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
		core.NewVec3(+halfBase, -halfHeight, -halfBase), // 1: right-back
		core.NewVec3(+halfBase, -halfHeight, +halfBase), // 2: right-front
		core.NewVec3(-halfBase, -halfHeight, +halfBase), // 3: left-front
		core.NewVec3(0, +halfHeight, 0),                 // 4: apex
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // base
		0, 4, 1, // back
		1, 4, 2, // right
		2, 4, 3, // front
		3, 4, 0, // left
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

// newIcosahedronMesh creates a regular icosahedron centered at the origin whose
// vertices lie on a sphere of the given radius
func newIcosahedronMesh(radius float64, mat material.Material) (*geometry.TriangleMesh, error) {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}
	for i := range vertices {
		vertices[i] = vertices[i].Multiply(scale)
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}
