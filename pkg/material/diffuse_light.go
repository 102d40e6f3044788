package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// DiffuseLight is a light-emitting material. It emits a constant power in
// every direction and never scatters.
type DiffuseLight struct {
	Power core.Vec3 // Emitted RGB power
}

// NewDiffuseLight creates a new diffuse light
func NewDiffuseLight(power core.Vec3) *DiffuseLight {
	return &DiffuseLight{Power: power}
}

// Scatter implements the Material interface; lights absorb every incoming ray
func (d *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emit returns the emitted light, independent of angle and position
func (d *DiffuseLight) Emit(rayIn core.Ray, hit HitRecord) core.Vec3 {
	return d.Power
}
