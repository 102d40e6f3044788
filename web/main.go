package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/df07/go-bvh-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes-dir", "scenes", "Directory of TOML/YAML scene files")
	verbose := flag.Bool("v", false, "Log debug output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	webServer := server.NewServer(*port, *scenesDir, logger)

	logger.Info("BVH Raytracer Web Server", "url", "http://localhost:"+flag.Lookup("port").Value.String()+"/api/scenes")

	if err := webServer.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
