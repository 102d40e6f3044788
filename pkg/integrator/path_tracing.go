package integrator

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// ShadowAcneEpsilon is the smallest t accepted for a hit, so a scattered ray
// does not re-hit the surface it left
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a bounded bounce count
type PathTracingIntegrator struct {
	maxDepth   int
	background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator. A nil
// background falls back to the sky gradient.
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSkyBackground()
	}
	return &PathTracingIntegrator{
		maxDepth:   maxDepth,
		background: background,
	}
}

// MaxDepth returns the maximum number of bounces
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor follows ray through at most maxDepth surface interactions.
// Each hit adds the emitted light of its material and multiplies the path
// throughput by the scatter attenuation; absorption ends the path and a miss
// adds the background. It is the iterative form of
// color(depth) = emitted + attenuation * color(depth-1), color(0) = black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	rayT := core.NewInterval(ShadowAcneEpsilon, math.Inf(1))

	for depth := pt.maxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, rayT)
		if !isHit {
			return color.Add(throughput.MultiplyVec(pt.background.Color(ray)))
		}

		color = color.Add(throughput.MultiplyVec(emittedLight(ray, hit)))

		if hit.Material == nil {
			return color
		}
		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return color
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return color
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(ray core.Ray, hit *material.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(material.Emitter); isEmissive {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}
