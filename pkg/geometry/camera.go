package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// ErrInvalidCamera is returned when a camera configuration cannot produce finite rays
var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Defocus cone angle in degrees, 0 disables depth of field
	FocusDistance float64   // Distance from the camera to the plane of perfect focus
}

// DefaultCameraConfig returns the default camera: looking down -Z from the origin
// with a 90° vertical field of view and no defocus blur
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90.0,
		DefocusAngle:  0.0,
		FocusDistance: 1.0,
	}
}

// MergeCameraConfig fills zero-valued fields of override from base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// ImageHeight returns floor(Width / AspectRatio)
func (c CameraConfig) ImageHeight() int {
	return int(float64(c.Width) / c.AspectRatio)
}

// Validate reports every problem with the configuration, each wrapping ErrInvalidCamera
func (c CameraConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCamera}, args...)...))
	}

	if c.Width <= 0 {
		invalid("image width must be positive, got %d", c.Width)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		invalid("aspect ratio must be positive and finite, got %g", c.AspectRatio)
	} else if c.Width > 0 && c.ImageHeight() < 1 {
		invalid("image height floor(%d / %g) must be at least 1", c.Width, c.AspectRatio)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		invalid("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	if !(c.DefocusAngle >= 0 && c.DefocusAngle < 180) {
		invalid("defocus angle must be in [0, 180) degrees, got %g", c.DefocusAngle)
	}
	if !(c.FocusDistance > 0) || math.IsInf(c.FocusDistance, 0) {
		invalid("focus distance must be positive and finite, got %g", c.FocusDistance)
	}

	// Coincident look-from/look-at or an up vector parallel to the view direction
	// leaves the basis undefined
	w := c.Center.Subtract(c.LookAt).Normalize()
	u := c.Up.Cross(w).Normalize()
	if !w.IsFinite() {
		invalid("look-from %v and look-at %v must differ", c.Center, c.LookAt)
	} else if !u.IsFinite() {
		invalid("up vector %v must not be parallel to the view direction", c.Up)
	}

	return errors.Join(errs...)
}

// Camera generates primary rays. It is immutable after NewCamera and safe for
// concurrent use.
type Camera struct {
	config       CameraConfig
	imageHeight  int
	center       core.Vec3
	u, v, w      core.Vec3 // Orthonormal basis: right, up, backward
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the next pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the next pixel down
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera validates config and derives the viewport
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageHeight := config.ImageHeight()

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	h := math.Tan(core.DegreesToRadians(config.VFov) / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(imageHeight)

	// Rows run down the image, so the vertical edge points along -v
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)
	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := config.Center.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Add(viewportV).Multiply(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle))

	return &Camera{
		config:       config,
		imageHeight:  imageHeight,
		center:       config.Center,
		u:            u,
		v:            v,
		w:            w,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// GetRay returns a ray through a uniformly jittered point of pixel (row, col).
// With a positive defocus angle the origin is sampled on the defocus disk.
func (c *Camera) GetRay(row, col int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	offsetU := jitter.X - 0.5
	offsetV := jitter.Y - 0.5

	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(col) + offsetU)).
		Add(c.pixelDeltaV.Multiply(float64(row) + offsetV))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// GetPixelCenterRay returns the unjittered ray through the center of pixel (row, col)
func (c *Camera) GetPixelCenterRay(row, col int) core.Ray {
	pixelCenter := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(col))).
		Add(c.pixelDeltaV.Multiply(float64(row)))
	return core.NewRay(c.center, pixelCenter.Subtract(c.center))
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.Width
}

// ImageHeight returns the image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
