package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	planarBase
	Material material.Material
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Quad {
	return &Quad{
		planarBase: newPlanarBase(corner, u, v),
		Material:   material,
		bbox: core.NewAABBFromPoints(
			corner,
			corner.Add(u),
			corner.Add(v),
			corner.Add(u).Add(v),
		).Pad(),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	hit, ok := q.hitPlane(ray, rayT)
	if !ok || !insideUnitSquare(hit.Alpha, hit.Beta) {
		return nil, false
	}
	return q.record(ray, hit, q.Material), true
}

// BoundingBox returns the padded bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

func insideUnitSquare(alpha, beta float64) bool {
	unit := core.NewInterval(0, 1)
	return unit.Contains(alpha) && unit.Contains(beta)
}
