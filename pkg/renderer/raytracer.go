package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/integrator"
)

// ErrInvalidSampling is returned for render settings that cannot produce an image
var ErrInvalidSampling = errors.New("invalid sampling configuration")

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int   // Number of camera rays per pixel
	TileSize        int   // Edge length of a tile in pixels (0 = 32)
	NumWorkers      int   // Number of tiles rendered in parallel (0 = GOMAXPROCS)
	Seed            int64 // Base seed; the same seed renders the same image
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	var errs []error
	if c.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidSampling, c.SamplesPerPixel))
	}
	if c.TileSize < 0 {
		errs = append(errs, fmt.Errorf("%w: tile size must not be negative, got %d", ErrInvalidSampling, c.TileSize))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidSampling, c.NumWorkers))
	}
	return errors.Join(errs...)
}

// Raytracer renders a world through a camera with an integrator.
// The camera, world and integrator are shared read-only by all workers.
type Raytracer struct {
	camera     *geometry.Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     Config
	logger     *slog.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(camera *geometry.Camera, world geometry.Shape, integ integrator.Integrator, config Config, logger *slog.Logger) (*Raytracer, error) {
	if camera == nil {
		return nil, errors.New("raytracer requires a camera")
	}
	if world == nil {
		return nil, errors.New("raytracer requires a world")
	}
	if integ == nil {
		return nil, errors.New("raytracer requires an integrator")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.TileSize == 0 {
		config.TileSize = 32
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integ,
		config:     config,
		logger:     logger,
	}, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int {
	return rt.camera.ImageWidth()
}

// Height returns the image height in pixels
func (rt *Raytracer) Height() int {
	return rt.camera.ImageHeight()
}

// samplePixelSum traces SamplesPerPixel independent rays through pixel (row, col)
// and returns the sum of their colors
func (rt *Raytracer) samplePixelSum(row, col int, sampler core.Sampler) core.Vec3 {
	sum := core.Vec3{}
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(row, col, sampler)
		sum = sum.Add(rt.integrator.RayColor(ray, rt.world, sampler))
	}
	return sum
}

// SamplePixel returns the linear (not gamma encoded) mean color of pixel (row, col)
func (rt *Raytracer) SamplePixel(row, col int, sampler core.Sampler) core.Vec3 {
	return rt.samplePixelSum(row, col, sampler).Divide(float64(rt.config.SamplesPerPixel))
}

// Render traces every pixel and hands the encoded result to sink.
// Tiles are rendered in parallel, each with its own random stream derived from
// the configured seed, so the output does not depend on scheduling.
func (rt *Raytracer) Render(ctx context.Context, sink PixelSink) (RenderStats, error) {
	start := time.Now()
	width, height := rt.Width(), rt.Height()
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	rt.logger.Info("rendering",
		"width", width,
		"height", height,
		"samples_per_pixel", rt.config.SamplesPerPixel,
		"tiles", len(tiles),
		"workers", rt.config.NumWorkers,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.config.NumWorkers)

	for _, tile := range tiles {
		g.Go(func() error {
			return rt.renderTile(ctx, tile, sink)
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Tiles:           len(tiles),
		Workers:         rt.config.NumWorkers,
		Duration:        time.Since(start),
	}
	rt.logger.Info("render complete", "stats", stats.String(), "samples_per_second", int(stats.SamplesPerSecond()))

	return stats, nil
}

// renderTile renders all pixels of one tile, checking for cancellation between rows
func (rt *Raytracer) renderTile(ctx context.Context, tile Tile, sink PixelSink) error {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(tileSeed(rt.config.Seed, tile.ID))))

	for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := tile.Bounds.Min.X; col < tile.Bounds.Max.X; col++ {
			sum := rt.samplePixelSum(row, col, sampler)
			sink.SetPixel(row, col, EncodeColor(sum, rt.config.SamplesPerPixel))
		}
	}

	rt.logger.Debug("tile complete", "tile", tile.ID, "bounds", tile.Bounds.String())
	return nil
}
