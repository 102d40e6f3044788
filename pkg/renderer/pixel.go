package renderer

import (
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// Pixel is a gamma-encoded 8-bit RGB triple
type Pixel struct {
	R, G, B uint8
}

// channelRange keeps encoded channels below 1 so that 256*x never reaches 256
var channelRange = core.NewInterval(0.0, 0.999)

// EncodeColor turns a sum of linear radiance samples into a display pixel:
// average over samples, gamma-2 encode (square root), clamp to [0, 0.999],
// scale by 256 and truncate.
func EncodeColor(sum core.Vec3, samples int) Pixel {
	scale := 1.0 / float64(samples)
	return Pixel{
		R: encodeChannel(sum.X * scale),
		G: encodeChannel(sum.Y * scale),
		B: encodeChannel(sum.Z * scale),
	}
}

// encodeChannel maps one linear channel to [0, 255]. NaN and negative values encode as 0.
func encodeChannel(linear float64) uint8 {
	if !(linear > 0) {
		return 0
	}
	return uint8(256 * channelRange.Clamp(math.Sqrt(linear)))
}
