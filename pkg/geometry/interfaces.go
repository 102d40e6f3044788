package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Every primitive and every composite (BVH, Translation, Rotation, HittableList)
// implements it. Hit reports only intersections whose t lies strictly inside rayT.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}
