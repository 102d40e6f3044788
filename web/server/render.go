package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// progressInterval is how often progress events are sent while rendering
const progressInterval = 250 * time.Millisecond

// ProgressUpdate represents a single progress update sent via SSE
type ProgressUpdate struct {
	CompletedPixels int64  `json:"completedPixels"`
	TotalPixels     int    `json:"totalPixels"`
	ImageData       string `json:"imageData,omitempty"` // Base64 encoded PNG, final update only
	Stats           *Stats `json:"stats,omitempty"`
	IsComplete      bool   `json:"isComplete"`
	ElapsedMs       int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Primitives       int     `json:"primitives"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// progressSink counts finished pixels while filling a framebuffer
type progressSink struct {
	fb        *renderer.Framebuffer
	completed atomic.Int64
}

func (p *progressSink) SetPixel(row, col int, px renderer.Pixel) {
	p.fb.SetPixel(row, col, px)
	p.completed.Add(1)
}

type renderResult struct {
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene, streaming console output and progress via SSE
// and finishing with the encoded image. Closing the connection cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()
	startTime := time.Now()

	req, err := parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 100)
	logger := slog.New(NewConsoleHandler(consoleChan, slog.LevelInfo, s.logger.Handler())).With("scene", req.Scene)

	sceneObj, err := s.openScene(req, logger)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Scene error: %v", err))
		return
	}

	config := sceneObj.RenderConfig()
	config.Seed = req.Seed
	rt, err := renderer.NewRaytracer(sceneObj.Camera, sceneObj.BVH, sceneObj.Integrator(), config, logger)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	sink := &progressSink{fb: renderer.NewFramebuffer(rt.Width(), rt.Height())}
	done := make(chan renderResult, 1)
	go func() {
		stats, err := rt.Render(ctx, sink)
		done <- renderResult{stats: stats, err: err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	totalPixels := rt.Width() * rt.Height()
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		case <-ticker.C:
			s.sendSSEUpdate(w, ProgressUpdate{
				CompletedPixels: sink.completed.Load(),
				TotalPixels:     totalPixels,
				ElapsedMs:       time.Since(startTime).Milliseconds(),
			})
		case result := <-done:
			s.drainConsole(w, consoleChan)
			if result.err != nil {
				s.sendSSEError(w, fmt.Sprintf("Render error: %v", result.err))
				return
			}

			imageData, err := s.imageToBase64PNG(sink.fb.Image())
			if err != nil {
				s.sendSSEError(w, fmt.Sprintf("Encoding error: %v", err))
				return
			}

			s.sendSSEUpdate(w, ProgressUpdate{
				CompletedPixels: sink.completed.Load(),
				TotalPixels:     totalPixels,
				ImageData:       imageData,
				Stats: &Stats{
					Width:            rt.Width(),
					Height:           rt.Height(),
					Primitives:       sceneObj.GetPrimitiveCount(),
					TotalSamples:     result.stats.TotalSamples,
					SamplesPerPixel:  result.stats.SamplesPerPixel,
					Tiles:            result.stats.Tiles,
					Workers:          result.stats.Workers,
					SamplesPerSecond: result.stats.SamplesPerSecond(),
					AverageLuminance: renderer.AverageLuminance(sink.fb),
				},
				IsComplete: true,
				ElapsedMs:  time.Since(startTime).Milliseconds(),
			})
			s.sendSSEEvent(w, "complete", "Rendering completed")
			return
		}
	}
}

// setSSEHeaders sets the headers of an event stream response
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// drainConsole sends the console messages still buffered
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "console", string(data))
}

// imageToBase64PNG encodes an image as a base64 PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a progress update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "progress", string(data))
}

// sendSSEError sends an error event via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	s.logger.Warn("render request failed", "error", message)
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent writes one event and flushes it to the client
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
