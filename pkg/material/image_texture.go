package material

import (
	"image"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width    int
	Height   int
	Pixels   []core.Vec3 // Row-major: Pixels[y*Width + x]
	InvScale float64     // UV multiplier; below 1 zooms in, above 1 repeats
	Fill     ColorSource // Used outside [0,1]² when set, otherwise UVs wrap
}

// NewImageTexture creates a new image texture that wraps UVs at the edges
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:    width,
		Height:   height,
		Pixels:   pixels,
		InvScale: 1.0,
	}
}

// NewImageTextureFromImage converts an already decoded image into a texture.
// scale > 1 zooms the image in, scale < 1 shrinks it; UVs that land outside
// the image take their color from fill.
func NewImageTextureFromImage(img image.Image, scale float64, fill ColorSource) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageTexture{
		Width:    width,
		Height:   height,
		Pixels:   pixels,
		InvScale: 1.0 / scale,
		Fill:     fill,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		if t.Fill != nil {
			return t.Fill.Evaluate(uv, point)
		}
		return core.Vec3{}
	}

	u := uv.X * t.InvScale
	v := uv.Y * t.InvScale

	if u < 0 || u > 1 || v < 0 || v > 1 {
		if t.Fill != nil {
			return t.Fill.Evaluate(core.NewVec2(u, v), point)
		}
		// Wrap UV coordinates to [0, 1]
		u -= float64(int(u))
		v -= float64(int(v))
		if u < 0 {
			u += 1.0
		}
		if v < 0 {
			v += 1.0
		}
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	// Clamp to image bounds
	x = max(0, min(x, t.Width-1))
	y = max(0, min(y, t.Height-1))

	return t.Pixels[y*t.Width+x]
}
