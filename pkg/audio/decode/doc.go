// ABOUTME: Package documentation for decoders
// ABOUTME: Describes the probing loader and per-format decoders

// Package decode turns encoded audio assets into PCM buffers. A Loader
// resolves a base path by probing the literal path and known extension
// variants, delegating to the decoder registered for each extension.
package decode
