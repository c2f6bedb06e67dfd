// ABOUTME: Sentinel errors for output streams
// ABOUTME: Lifecycle misuse errors shared by backends
package output

import "errors"

var (
	// ErrNotOpen means the stream was used before Open succeeded.
	ErrNotOpen = errors.New("stream not open")

	// ErrClosed means the stream was already closed or disconnected.
	ErrClosed = errors.New("stream closed")
)
