package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// PixelSink receives finished pixels. Rows run top to bottom and columns left to right.
// SetPixel is called concurrently for distinct pixels.
type PixelSink interface {
	SetPixel(row, col int, p Pixel)
}

// Framebuffer is an in-memory row-major pixel buffer
type Framebuffer struct {
	Width  int
	Height int
	Pixels []Pixel // Pixels[row*Width + col]
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}
}

// SetPixel implements PixelSink
func (fb *Framebuffer) SetPixel(row, col int, p Pixel) {
	fb.Pixels[row*fb.Width+col] = p
}

// At returns the pixel at (row, col)
func (fb *Framebuffer) At(row, col int) Pixel {
	return fb.Pixels[row*fb.Width+col]
}

// Image converts the buffer into an opaque RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := 0; row < fb.Height; row++ {
		for col := 0; col < fb.Width; col++ {
			p := fb.At(row, col)
			img.SetRGBA(col, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// WritePPM writes the buffer as a plain-text (P3) PPM image
func (fb *Framebuffer) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, p := range fb.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}
