package geometry

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// triangleAreaTolerance bounds the error of the sub-triangle area sum
const triangleAreaTolerance = 1e-8

// Triangle represents the triangle with vertices Q, Q+U and Q+V
type Triangle struct {
	planarBase
	Material material.Material
	bbox     core.AABB
}

// NewTriangle creates a new triangle from a vertex and the two edges leaving it
func NewTriangle(q, u, v core.Vec3, material material.Material) *Triangle {
	return &Triangle{
		planarBase: newPlanarBase(q, u, v),
		Material:   material,
		bbox:       core.NewAABBFromPoints(q, q.Add(u), q.Add(v)).Pad(),
	}
}

// NewTriangleFromVertices creates a triangle from three vertices
func NewTriangleFromVertices(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	return NewTriangle(v0, v1.Subtract(v0), v2.Subtract(v0), material)
}

// Hit tests if a ray intersects with the triangle
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	hit, ok := t.hitPlane(ray, rayT)
	if !ok || !insideUnitTriangle(hit.Alpha, hit.Beta) {
		return nil, false
	}
	return t.record(ray, hit, t.Material), true
}

// BoundingBox returns the padded bounding box of the triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// insideUnitTriangle checks (alpha, beta) against the triangle (0,0), (1,0), (0,1).
// The point is inside when the three sub-triangles it forms with the vertices
// add up to the unit triangle's area of 0.5.
func insideUnitTriangle(alpha, beta float64) bool {
	if !insideUnitSquare(alpha, beta) {
		return false
	}

	left := math.Abs(0.5 * alpha)
	bottom := math.Abs(0.5 * beta)
	diagonal := 0.5 * math.Abs(core.NewVec3(-alpha, 1-beta, 0).Cross(core.NewVec3(1-alpha, -beta, 0)).Z)

	return math.Abs(left+bottom+diagonal-0.5) < triangleAreaTolerance
}
