// ABOUTME: Package documentation for audio types
// ABOUTME: Describes the PCM buffer model shared by decode and engine

// Package audio defines the PCM buffer model used throughout the
// engine: fully decoded, interleaved float32 samples in [-1, 1].
package audio
