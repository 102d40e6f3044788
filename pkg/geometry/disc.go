package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Disc represents a circular disc centered at Q in the plane spanned by U and V.
// U and V are normalized, so Radius is measured in world units along them.
type Disc struct {
	planarBase
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewDisc creates a new disc
func NewDisc(center, u, v core.Vec3, radius float64, material material.Material) *Disc {
	u = u.Normalize()
	v = v.Normalize()

	ru := u.Multiply(radius)
	rv := v.Multiply(radius)

	return &Disc{
		planarBase: newPlanarBase(center, u, v),
		Radius:     radius,
		Material:   material,
		bbox: core.NewAABBFromPoints(
			center.Subtract(ru).Subtract(rv),
			center.Add(ru).Subtract(rv),
			center.Subtract(ru).Add(rv),
			center.Add(ru).Add(rv),
		).Pad(),
	}
}

// Hit tests if a ray intersects with the disc
func (d *Disc) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	hit, ok := d.hitPlane(ray, rayT)
	if !ok || !(hit.Alpha*hit.Alpha+hit.Beta*hit.Beta <= d.Radius*d.Radius) {
		return nil, false
	}
	return d.record(ray, hit, d.Material), true
}

// BoundingBox returns the padded bounding box of the disc
func (d *Disc) BoundingBox() core.AABB {
	return d.bbox
}
