package integrator

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Background supplies the radiance of rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// GradientBackground blends vertically from Bottom (looking down) to Top (looking up)
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSkyBackground returns the white-to-blue sky gradient
func NewSkyBackground() *GradientBackground {
	return &GradientBackground{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color blends by a = 0.5*(unit direction y + 1)
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	a := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Value core.Vec3
}

// NewSolidBackground creates a constant background; black suits closed or light-only scenes
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Value: color}
}

// Color returns the constant color
func (s *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Value
}
