// ABOUTME: Sentinel errors for the decode package
// ABOUTME: Distinguishes missing assets from malformed audio
package decode

import "errors"

var (
	// ErrNoPlayableAsset means no path variant of a base path decoded.
	ErrNoPlayableAsset = errors.New("no decodable asset for base path")

	// ErrUnknownFormat means the path extension has no registered decoder.
	ErrUnknownFormat = errors.New("no decoder registered for format")

	// ErrEmptyAudio means the stream decoded to zero frames.
	ErrEmptyAudio = errors.New("decoded audio is empty")
)
