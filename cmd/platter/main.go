// ABOUTME: Entry point for the platter scratch deck
// ABOUTME: Parses CLI flags, wires the engine, and runs the TUI
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/platterlabs/platter/internal/ui"
	"github.com/platterlabs/platter/pkg/audio/decode"
	"github.com/platterlabs/platter/pkg/audio/output"
	"github.com/platterlabs/platter/pkg/engine"
)

var (
	assetDir    = flag.String("assets", ".", "Asset directory holding sounds/ and tracks/")
	intro       = flag.String("intro", "sounds/haahhh", "Platter sample to play on startup (base path, no extension)")
	samples     = flag.String("samples", "", "Comma-separated platter sample base paths")
	tracks      = flag.String("tracks", "", "Comma-separated music track base paths")
	sensitivity = flag.Float64("sensitivity", 0.17, "Scratch sensitivity")
	sampleRate  = flag.Int("rate", 48000, "Output sample rate in Hz")
	logFile     = flag.String("log-file", "platter.log", "Log file path")
)

func main() {
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file only.
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()
	log.SetOutput(f)

	log.Printf("Starting platter deck, assets from %s", *assetDir)

	cfg := engine.Config{
		Sensitivity: *sensitivity,
		SampleRate:  *sampleRate,
	}
	if *samples != "" {
		cfg.PlatterPaths = splitPaths(*samples)
	}
	if *tracks != "" {
		cfg.TrackPaths = splitPaths(*tracks)
	}

	loader := decode.NewLoader(os.DirFS(*assetDir))
	stream := output.NewOto()
	stream.SetErrorCallbacks(
		func(err error) { log.Printf("Stream error before close: %v", err) },
		func(err error) { log.Printf("Stream error after close: %v", err) },
	)

	eng := engine.New(cfg)
	if err := eng.Init(loader, stream); err != nil {
		log.Fatalf("Engine init failed: %v", err)
	}
	defer eng.Release()

	if err := eng.StartStream(); err != nil {
		log.Fatalf("Stream start failed: %v", err)
	}

	if err := eng.PlayIntroThenLoop(*intro); err != nil {
		log.Printf("Intro sample unavailable: %v", err)
	}

	if err := ui.Run(eng); err != nil {
		log.Fatalf("UI error: %v", err)
	}
	log.Printf("Shutting down")
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
