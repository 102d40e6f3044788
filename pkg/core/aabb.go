package core

import (
	"fmt"
	"math"
)

// minBoxThickness is the smallest per-axis extent kept by Pad
const minBoxThickness = 1e-4

// AABB represents an axis-aligned bounding box as one interval per axis.
// The zero value is a degenerate box at the origin that no ray can hit.
type AABB struct {
	X, Y, Z Interval
}

// NewAABB creates the box spanned by two opposite corners, in any order
func NewAABB(a, b Vec3) AABB {
	return AABB{
		X: NewInterval(math.Min(a.X, b.X), math.Max(a.X, b.X)),
		Y: NewInterval(math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)),
		Z: NewInterval(math.Min(a.Z, b.Z), math.Max(a.Z, b.Z)),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return NewAABB(min, max)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: UnionInterval(aabb.X, other.X),
		Y: UnionInterval(aabb.Y, other.Y),
		Z: UnionInterval(aabb.Z, other.Z),
	}
}

// Axis returns the interval for axis 0 (X), 1 (Y) or 2 (Z)
func (aabb AABB) Axis(axis int) Interval {
	switch axis {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	case 2:
		return aabb.Z
	default:
		panic(fmt.Sprintf("core: invalid AABB axis %d", axis))
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// IsFinite reports whether both corners have only finite coordinates
func (aabb AABB) IsFinite() bool {
	return aabb.Min().IsFinite() && aabb.Max().IsFinite()
}

// Pad widens every axis thinner than minBoxThickness so planar shapes
// never produce zero-thickness boxes
func (aabb AABB) Pad() AABB {
	pad := func(i Interval) Interval {
		if i.Size() >= minBoxThickness {
			return i
		}
		return i.Expand(minBoxThickness)
	}
	return AABB{X: pad(aabb.X), Y: pad(aabb.Y), Z: pad(aabb.Z)}
}

// Translate returns the box shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Translate(offset.X),
		Y: aabb.Y.Translate(offset.Y),
		Z: aabb.Z.Translate(offset.Z),
	}
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x > y && x > z {
		return 0
	}
	if y > z {
		return 1
	}
	return 2
}

// Corners returns the eight corner points of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	n := 0
	for _, x := range [2]float64{aabb.X.Min, aabb.X.Max} {
		for _, y := range [2]float64{aabb.Y.Min, aabb.Y.Max} {
			for _, z := range [2]float64{aabb.Z.Min, aabb.Z.Max} {
				corners[n] = NewVec3(x, y, z)
				n++
			}
		}
	}
	return corners
}

// Hit tests the ray against the box using the slab method, restricted to rayT.
// It returns the narrowed interval of t values inside the box.
//
// Zero direction components are not special-cased: the inverse becomes ±Inf
// and the slab bounds become ±Inf (or NaN when the origin lies exactly on a
// slab plane, in which case the comparisons below leave rayT untouched).
func (aabb AABB) Hit(ray Ray, rayT Interval) (Interval, bool) {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (slab.Min - origin) * invD
		t1 := (slab.Max - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return rayT, false
		}
	}
	return rayT, true
}

// String implements fmt.Stringer
func (aabb AABB) String() string {
	return fmt.Sprintf("AABB(x: %v, y: %v, z: %v)", aabb.X, aabb.Y, aabb.Z)
}
