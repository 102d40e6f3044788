package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Translation places a shared shape instance at an offset
type Translation struct {
	Shape  Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslation wraps shape so that it appears moved by offset
func NewTranslation(shape Shape, offset core.Vec3) *Translation {
	return &Translation{
		Shape:  shape,
		Offset: offset,
		bbox:   shape.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into the instance's frame and the hit point back out.
// Normals are unaffected by translation.
func (tr *Translation) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	local := core.NewRay(ray.Origin.Subtract(tr.Offset), ray.Direction)

	hit, ok := tr.Shape.Hit(local, rayT)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the instance bounding box moved by the offset
func (tr *Translation) BoundingBox() core.AABB {
	return tr.bbox
}
