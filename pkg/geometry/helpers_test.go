package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

// constSampler returns the same value for every dimension
type constSampler struct {
	v float64
}

func (c constSampler) Get1D() float64   { return c.v }
func (c constSampler) Get2D() core.Vec2 { return core.NewVec2(c.v, c.v) }
func (c constSampler) Get3D() core.Vec3 { return core.NewVec3(c.v, c.v, c.v) }

// forwardT is the valid ray interval used by the integrator
var forwardT = core.NewInterval(0.001, math.Inf(1))

func testMaterial() material.Material {
	return material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
}

func assertVecInDelta(t *testing.T, expected, actual core.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "X of %v", actual)
	assert.InDelta(t, expected.Y, actual.Y, delta, "Y of %v", actual)
	assert.InDelta(t, expected.Z, actual.Z, delta, "Z of %v", actual)
}
