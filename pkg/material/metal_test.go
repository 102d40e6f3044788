package material

import (
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
		{"Clamp large negative", -10.0, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	directions := []core.Vec3{
		core.NewVec3(0, -1, -1).Normalize(),
		core.NewVec3(0.3, 0.2, -1).Normalize(),
		core.NewVec3(0, 0, -1),
	}
	normal := core.NewVec3(0, 0, 1)

	for _, d := range directions {
		rayIn := core.NewRay(core.NewVec3(0, 0, 1), d)
		hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}

		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		require.True(t, didScatter, "Metal should scatter")

		// reflect(d, n) = d - 2(d·n)n
		expected := d.Subtract(normal.Multiply(2 * d.Dot(normal)))
		assert.InDelta(t, 0, scatter.Scattered.Direction.Subtract(expected).Length(), 1e-12)
		assert.Equal(t, albedo, scatter.Attenuation)
	}
}

func TestMetal_ReflectsUnitIncomingDirection(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}

	// A long incoming direction reflects as its unit vector
	scatter, didScatter := metal.Scatter(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -5, 0)), hit, fixedSampler{})

	require.True(t, didScatter)
	assert.InDelta(t, 0, scatter.Scattered.Direction.Subtract(core.NewVec3(0, 1, 0)).Length(), 1e-12)
}

func TestMetal_FuzzAbsorbsRaysBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	hit := HitRecord{Normal: core.NewVec3(0, 1, 0)}

	// Grazing ray: reflection is (1, 0, 0) and the perturbation below pushes it under the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0), core.NewVec3(1, 0, 0))
	// r=1, φ=3π/2, cosθ=0 maps to (0, -1, 0)
	sampler := fixedSampler{value3D: core.NewVec3(1, 0.75, 0.5)}

	_, didScatter := metal.Scatter(rayIn, hit, sampler)
	assert.False(t, didScatter, "ray perturbed into the surface should be absorbed")
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	sampler := core.NewSeededSampler(42)
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1)}
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 200; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			continue
		}
		offset := scatter.Scattered.Direction.Subtract(core.NewVec3(0, 0, 1))
		assert.LessOrEqual(t, offset.Length(), 0.3+1e-12)
	}
}
