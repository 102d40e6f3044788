package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

// TestLoadImage writes the same image as PNG and TIFF and verifies both decode
func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()

	encoders := map[string]func(f *os.File, img image.Image) error{
		"test.png": func(f *os.File, img image.Image) error { return png.Encode(f, img) },
		"test.tif": func(f *os.File, img image.Image) error { return tiff.Encode(f, img, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := encode(f, testImage()); err != nil {
				f.Close()
				t.Fatalf("Failed to encode image: %v", err)
			}
			f.Close()

			img, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}

			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
				t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
			}

			origin := img.Bounds().Min
			r, g, b, _ := img.At(origin.X+1, origin.Y).RGBA()
			if r != 0xffff || g != 0 || b != 0 {
				t.Errorf("Top-right pixel: expected red, got (%d, %d, %d)", r, g, b)
			}
			r, g, b, _ = img.At(origin.X+1, origin.Y+1).RGBA()
			if r != 0 || g != 0 || b != 0xffff {
				t.Errorf("Bottom-right pixel: expected blue, got (%d, %d, %d)", r, g, b)
			}
		})
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

// TestLoadImageNotAnImage verifies error handling for undecodable files
func TestLoadImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
