package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Axis selects the coordinate axis a Rotation turns about
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String implements fmt.Stringer
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts "x", "y" or "z" into an Axis
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown rotation axis %q", s)
	}
}

// Rotation turns a shared shape instance about a coordinate axis through the origin
type Rotation struct {
	Shape   Shape
	Axis    Axis
	Degrees float64
	sin     float64
	cos     float64
	bbox    core.AABB
}

// NewRotation wraps shape so that it appears rotated by degrees about axis.
// Positive angles follow the right-hand rule.
func NewRotation(shape Shape, axis Axis, degrees float64) *Rotation {
	radians := core.DegreesToRadians(degrees)
	r := &Rotation{
		Shape:   shape,
		Axis:    axis,
		Degrees: degrees,
		sin:     math.Sin(radians),
		cos:     math.Cos(radians),
	}

	corners := shape.BoundingBox().Corners()
	for i, corner := range corners {
		corners[i] = r.rotate(corner, r.sin)
	}
	r.bbox = core.NewAABBFromPoints(corners[:]...)

	return r
}

// rotate turns v about the axis; passing -sin applies the inverse rotation
func (r *Rotation) rotate(v core.Vec3, sin float64) core.Vec3 {
	cos := r.cos
	switch r.Axis {
	case AxisX:
		return core.NewVec3(v.X, cos*v.Y-sin*v.Z, sin*v.Y+cos*v.Z)
	case AxisY:
		return core.NewVec3(cos*v.X+sin*v.Z, v.Y, -sin*v.X+cos*v.Z)
	default:
		return core.NewVec3(cos*v.X-sin*v.Y, sin*v.X+cos*v.Y, v.Z)
	}
}

// Hit rotates the ray into object space, delegates, and rotates the
// resulting point and normal back into world space
func (r *Rotation) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	local := core.NewRay(r.rotate(ray.Origin, -r.sin), r.rotate(ray.Direction, -r.sin))

	hit, ok := r.Shape.Hit(local, rayT)
	if !ok {
		return nil, false
	}

	hit.Point = r.rotate(hit.Point, r.sin)
	hit.Normal = r.rotate(hit.Normal, r.sin)
	return hit, true
}

// BoundingBox returns the world-space box enclosing the rotated instance box
func (r *Rotation) BoundingBox() core.AABB {
	return r.bbox
}
