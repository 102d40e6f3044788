package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// ErrInvalidMesh is returned for face lists that do not describe triangles over the given vertices
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// Each group of three indices forms a triangle. materials, when non-nil, gives
// one material per triangle and overrides mat.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, materials []material.Material) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	numTriangles := len(faces) / 3
	if materials != nil && len(materials) != numTriangles {
		return nil, fmt.Errorf("%w: %d materials for %d triangles", ErrInvalidMesh, len(materials), numTriangles)
	}

	triangles := make([]Shape, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, idx, len(vertices))
			}
		}

		triangleMaterial := mat
		if materials != nil {
			triangleMaterial = materials[i]
		}
		triangles[i] = NewTriangleFromVertices(vertices[i0], vertices[i1], vertices[i2], triangleMaterial)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	return tm.bvh.Hit(ray, rayT)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
