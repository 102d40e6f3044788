package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Layered represents a material with two layers - an outer and inner material.
// Light hits the outer layer first, then if it scatters inward, hits the inner layer.
// This simulates coatings such as varnish over a diffuse base.
type Layered struct {
	Outer Material
	Inner Material
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Scatter implements the Material interface for layered scattering
func (l *Layered) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	outerHit := hit
	outerHit.Material = l.Outer

	outerResult, outerScatters := l.Outer.Scatter(rayIn, outerHit, sampler)
	if !outerScatters {
		return ScatterResult{}, false
	}

	// Outward scatter never reaches the inner layer
	scatteredDirection := outerResult.Scattered.Direction.Normalize()
	if scatteredDirection.Dot(hit.Normal) >= 0 {
		return outerResult, true
	}

	innerRay := core.NewRay(hit.Point, scatteredDirection)
	innerHit := hit
	innerHit.Material = l.Inner

	innerResult, innerScatters := l.Inner.Scatter(innerRay, innerHit, sampler)
	if !innerScatters {
		return outerResult, true
	}

	return ScatterResult{
		Scattered:   innerResult.Scattered,
		Attenuation: outerResult.Attenuation.MultiplyVec(innerResult.Attenuation),
	}, true
}
