package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/tiff"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-raytracer/pkg/config"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene     string
	ScenesDir string
	List      bool
	Width     int
	Samples   int
	MaxDepth  int
	Workers   int
	Seed      int64
	Output    string
	Format    string
	Verbose   bool
	Debug     bool
	Quiet     bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.Scene, "scene", "default", "Built-in scene ID, file:<name> from -scenes-dir, or a .toml/.yaml scene file")
	fs.StringVar(&opts.ScenesDir, "scenes-dir", "scenes", "Directory of scene files")
	fs.BoolVar(&opts.List, "list", false, "List available scenes and exit")
	fs.IntVar(&opts.Width, "width", 0, "Image width in pixels (0 keeps the scene's width)")
	fs.IntVar(&opts.Samples, "spp", 0, "Samples per pixel (0 keeps the scene's setting)")
	fs.IntVar(&opts.MaxDepth, "depth", 0, "Maximum ray bounces (0 keeps the scene's setting)")
	fs.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = GOMAXPROCS)")
	fs.Int64Var(&opts.Seed, "seed", 42, "Base random seed")
	fs.StringVar(&opts.Output, "o", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&opts.Format, "format", "", "Output format: png, ppm or tiff (default from -o, else png)")
	fs.BoolVar(&opts.Verbose, "v", false, "Log progress")
	fs.BoolVar(&opts.Debug, "vv", false, "Log debug output")
	fs.BoolVar(&opts.Quiet, "q", false, "Only log errors")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.Width < 0 || opts.Samples < 0 || opts.MaxDepth < 0 || opts.Workers < 0 {
		return nil, errors.New("-width, -spp, -depth and -workers must not be negative")
	}

	if opts.Format == "" {
		opts.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Output)), ".")
		if opts.Format == "" {
			opts.Format = "png"
		}
	}
	switch opts.Format {
	case "png", "ppm", "tiff", "tif":
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}

	return opts, nil
}

// logLevel maps the verbosity flags to a level, defaulting to warnings
func (o *options) logLevel() slog.Level {
	switch {
	case o.Debug:
		return slog.LevelDebug
	case o.Verbose:
		return slog.LevelInfo
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.List {
		return listScenes(stdout, opts.ScenesDir)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: opts.logLevel()}))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fb, stats, err := renderScene(ctx, opts, logger)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == "" {
		timestamp := time.Now().Format("20060102_150405")
		output = filepath.Join("output", sceneDirName(opts.Scene), fmt.Sprintf("render_%s.%s", timestamp, opts.Format))
	}
	if err := writeImage(fb, output, opts.Format); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Rendered %s\nRender saved as %s\n", stats, output)
	return nil
}

// renderScene opens, preprocesses and renders the selected scene
func renderScene(ctx context.Context, opts *options, logger *slog.Logger) (*renderer.Framebuffer, renderer.RenderStats, error) {
	s, err := config.OpenScene(opts.Scene, opts.ScenesDir, geometry.CameraConfig{Width: opts.Width})
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	if opts.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.Samples
	}
	if opts.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = opts.MaxDepth
	}

	if err := s.Preprocess(logger); err != nil {
		return nil, renderer.RenderStats{}, err
	}

	cfg := s.RenderConfig()
	cfg.NumWorkers = opts.Workers
	cfg.Seed = opts.Seed

	rt, err := renderer.NewRaytracer(s.Camera, s.BVH, s.Integrator(), cfg, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	fb := renderer.NewFramebuffer(rt.Width(), rt.Height())
	stats, err := rt.Render(ctx, fb)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return fb, stats, nil
}

// writeImage encodes the framebuffer to path, creating its directory
func writeImage(fb *renderer.Framebuffer, path, format string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	switch format {
	case "ppm":
		err = fb.WritePPM(file)
	case "tiff", "tif":
		err = tiff.Encode(file, fb.Image(), &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(file, fb.Image())
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", format, err)
	}
	return nil
}

// listScenes prints the available scenes as YAML
func listScenes(w io.Writer, scenesDir string) error {
	groups, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(groups); err != nil {
		return err
	}
	return enc.Close()
}

// sceneDirName turns a scene reference into a directory name for the default output path
func sceneDirName(ref string) string {
	name := strings.TrimPrefix(ref, "file:")
	name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if name == "" || name == "." {
		return "scene"
	}
	return name
}
