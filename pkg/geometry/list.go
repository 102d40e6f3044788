package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// HittableList tests every shape in order and keeps the nearest hit.
// It is the brute-force counterpart of BVH and is handy for small groups.
type HittableList struct {
	Shapes []Shape
	bbox   core.AABB
}

// NewHittableList creates a list from shapes
func NewHittableList(shapes ...Shape) *HittableList {
	list := &HittableList{}
	for _, shape := range shapes {
		list.Add(shape)
	}
	return list
}

// Add appends a shape and grows the bounding box
func (l *HittableList) Add(shape Shape) {
	if len(l.Shapes) == 0 {
		l.bbox = shape.BoundingBox()
	} else {
		l.bbox = l.bbox.Union(shape.BoundingBox())
	}
	l.Shapes = append(l.Shapes, shape)
}

// Hit returns the nearest hit among all shapes
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, ok := shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all shape boxes
func (l *HittableList) BoundingBox() core.AABB {
	return l.bbox
}
