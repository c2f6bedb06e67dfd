// ABOUTME: Package documentation for the playback engine
// ABOUTME: Describes the scratch model and the two-thread contract

// Package engine implements real-time variable-speed sample playback
// for a turntable scratch interaction. A control goroutine feeds
// gesture and volume updates through atomic parameters; the output
// stream's playback goroutine mixes all voices in the render callback,
// advancing each voice's fractional cursor at an arbitrary signed rate
// with band-limited interpolation.
package engine
