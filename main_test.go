package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/tiff"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFormat string
		wantErr    bool
	}{
		{"defaults", nil, "png", false},
		{"format from output", []string{"-o", "out/image.PPM"}, "ppm", false},
		{"explicit format wins", []string{"-o", "image.png", "-format", "tiff"}, "tiff", false},
		{"unsupported format", []string{"-format", "gif"}, "", true},
		{"unsupported extension", []string{"-o", "image.bmp"}, "", true},
		{"negative width", []string{"-width", "-1"}, "", true},
		{"stray argument", []string{"cornell-box"}, "", true},
		{"unknown flag", []string{"-height", "10"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args, &bytes.Buffer{})
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for args %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("Expected format %q, got %q", tt.wantFormat, opts.Format)
			}
		})
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-h"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "-scene") {
		t.Errorf("Usage should list the -scene flag, got %q", stderr.String())
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		args []string
		want slog.Level
	}{
		{nil, slog.LevelWarn},
		{[]string{"-q"}, slog.LevelError},
		{[]string{"-v"}, slog.LevelInfo},
		{[]string{"-vv"}, slog.LevelDebug},
		{[]string{"-v", "-vv"}, slog.LevelDebug},
	}

	for _, tt := range tests {
		opts, err := parseFlags(tt.args, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got := opts.logLevel(); got != tt.want {
			t.Errorf("logLevel(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestRun_List(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-list", "-scenes-dir", t.TempDir()}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var groups []scene.SceneGroup
	if err := yaml.Unmarshal(stdout.Bytes(), &groups); err != nil {
		t.Fatalf("Listing is not valid YAML: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Built-in Scenes" {
		t.Fatalf("Expected only the built-in group, got %+v", groups)
	}
	if len(groups[0].Scenes) != len(scene.BuiltinScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.BuiltinScenes()), len(groups[0].Scenes))
	}
}

func TestRun_Render(t *testing.T) {
	dir := t.TempDir()

	decoders := map[string]func(*os.File) (image.Image, error){
		"png":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"tiff": func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			output := filepath.Join(dir, format, "render."+format)
			args := []string{"-scene", "sphere-over-ground", "-width", "16", "-spp", "1", "-depth", "3", "-o", output}

			var stdout bytes.Buffer
			if err := run(context.Background(), args, &stdout, &bytes.Buffer{}); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(stdout.String(), output) {
				t.Errorf("Expected output path in %q", stdout.String())
			}

			f, err := os.Open(output)
			if err != nil {
				t.Fatalf("Output not written: %v", err)
			}
			defer f.Close()

			img, err := decode(f)
			if err != nil {
				t.Fatalf("Output does not decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 9 {
				t.Errorf("Expected 16x9 image, got %v", b)
			}
		})
	}
}

func TestRun_RenderPPM(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.ppm")
	args := []string{"-scene", "cornell-box", "-width", "8", "-spp", "1", "-depth", "2", "-o", output, "-workers", "2"}

	if err := run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n8 8\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:min(len(data), 20)]))
	}
	if lines := strings.Count(string(data), "\n"); lines != 3+64 {
		t.Errorf("Expected %d lines, got %d", 3+64, lines)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent"}},
		{"missing scene file", []string{"-scene", filepath.Join(dir, "missing.toml")}},
		{"unknown file scene", []string{"-scene", "file:missing", "-scenes-dir", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", filepath.Join(dir, "never.png"))
			if err := run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
			if _, err := os.Stat(filepath.Join(dir, "never.png")); err == nil {
				t.Errorf("No image should be written on error")
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	args := []string{"-scene", "sphere-over-ground", "-width", "16", "-spp", "1", "-o", filepath.Join(t.TempDir(), "x.png")}
	err := run(ctx, args, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSceneDirName(t *testing.T) {
	tests := map[string]string{
		"cornell-box":          "cornell-box",
		"file:glass":           "glass",
		"scenes/caustics.toml": "caustics",
		"":                     "scene",
	}
	for ref, want := range tests {
		if got := sceneDirName(ref); got != want {
			t.Errorf("sceneDirName(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestSceneFiles(t *testing.T) {
	files, err := scene.ListSceneFiles("scenes")
	if err != nil {
		t.Fatalf("Failed to list scenes: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("Expected scene files in scenes/")
	}

	for _, info := range files {
		t.Run(info.ID, func(t *testing.T) {
			opts := &options{Scene: info.ID, ScenesDir: "scenes", Width: 8, Samples: 1, MaxDepth: 2, Workers: 1, Seed: 1}
			fb, stats, err := renderScene(context.Background(), opts, nil)
			if err != nil {
				t.Fatalf("Failed to render %s: %v", info.FilePath, err)
			}
			if fb.Width != 8 || stats.TotalPixels != fb.Width*fb.Height {
				t.Errorf("Unexpected render size %dx%d (%d pixels)", fb.Width, fb.Height, stats.TotalPixels)
			}
		})
	}
}
