package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	Tiles           int           // Number of tiles the image was split into
	Workers         int           // Maximum number of tiles rendered at once
	Duration        time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera-ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// String implements fmt.Stringer
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples (%d/pixel), %d tiles on %d workers in %v",
		s.TotalPixels, s.TotalSamples, s.SamplesPerPixel, s.Tiles, s.Workers, s.Duration.Round(time.Millisecond))
}

// AverageLuminance returns the mean Rec. 709 luminance of the buffer in [0, 1]
func AverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Pixels) == 0 {
		return 0
	}

	var total float64
	for _, p := range fb.Pixels {
		r := float64(p.R) / 255.0
		g := float64(p.G) / 255.0
		b := float64(p.B) / 255.0
		total += 0.2126*r + 0.7152*g + 0.0722*b
	}
	return total / float64(len(fb.Pixels))
}
