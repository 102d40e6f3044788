package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderStats(t *testing.T) {
	stats := RenderStats{
		TotalPixels:     100,
		TotalSamples:    1000,
		SamplesPerPixel: 10,
		Tiles:           4,
		Workers:         2,
		Duration:        2 * time.Second,
	}

	assert.InDelta(t, 500.0, stats.SamplesPerSecond(), 1e-9)
	assert.Equal(t, "100 pixels, 1000 samples (10/pixel), 4 tiles on 2 workers in 2s", stats.String())
	assert.Equal(t, 0.0, RenderStats{TotalSamples: 5}.SamplesPerSecond())
}

func TestAverageLuminance(t *testing.T) {
	tests := []struct {
		name   string
		pixels []Pixel
		want   float64
	}{
		{"empty", nil, 0},
		{"black", []Pixel{{0, 0, 0}}, 0},
		{"white", []Pixel{{255, 255, 255}, {255, 255, 255}}, 1},
		{"pure green", []Pixel{{0, 255, 0}}, 0.7152},
		{"mixed", []Pixel{{255, 255, 255}, {0, 0, 0}}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &Framebuffer{Width: len(tt.pixels), Height: 1, Pixels: tt.pixels}
			assert.InDelta(t, tt.want, AverageLuminance(fb), 1e-9)
		})
	}
}
