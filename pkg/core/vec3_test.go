package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		n        Vec3
		expected Vec3
	}{
		{"straight down onto floor", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v.Reflect(tt.n)
			assert.InDelta(t, 0, result.Subtract(tt.expected).Length(), 1e-12)
		})
	}
}

func TestVec3_RefractHeadOnKeepsDirection(t *testing.T) {
	v := NewVec3(0, 0, -1)
	n := NewVec3(0, 0, 1)

	refracted := v.Refract(n, 1.0/1.5)

	assert.InDelta(t, 0, refracted.Subtract(v).Length(), 1e-12)
}

func TestVec3_RefractSnellsLaw(t *testing.T) {
	ratio := 1.0 / 1.5
	angle := math.Pi / 6
	v := NewVec3(math.Sin(angle), -math.Cos(angle), 0)
	n := NewVec3(0, 1, 0)

	refracted := v.Refract(n, ratio)

	// sin(θ') = ratio * sin(θ)
	assert.InDelta(t, ratio*math.Sin(angle), refracted.X, 1e-12)
	assert.InDelta(t, 1.0, refracted.Length(), 1e-12)
}

func TestVec3_NearZero(t *testing.T) {
	assert.True(t, NewVec3(0, 0, 0).NearZero())
	assert.True(t, NewVec3(1e-9, -1e-9, 0).NearZero())
	assert.False(t, NewVec3(1e-9, 1e-3, 0).NearZero())
}

func TestVec3_NormalizeZeroIsNotFinite(t *testing.T) {
	assert.False(t, NewVec3(0, 0, 0).Normalize().IsFinite())
	assert.True(t, NewVec3(3, 4, 0).Normalize().IsFinite())
	assert.InDelta(t, 1.0, NewVec3(3, 4, 0).Normalize().Length(), 1e-12)
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-4, 0.5, 2)
	c := a.Cross(b)

	assert.InDelta(t, 0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0, c.Dot(b), 1e-12)
	assert.Equal(t, NewVec3(0, 0, 1), NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)))
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	assert.Equal(t, 1.0, v.Axis(0))
	assert.Equal(t, 2.0, v.Axis(1))
	assert.Equal(t, 3.0, v.Axis(2))
	assert.Panics(t, func() { v.Axis(3) })
}

func TestDegreesToRadians(t *testing.T) {
	assert.Equal(t, math.Pi/2, DegreesToRadians(90))
	assert.Equal(t, math.Pi, DegreesToRadians(180))
	assert.Equal(t, math.Pi*2, DegreesToRadians(360))
}
