// ABOUTME: Core PCM types for the playback engine
// ABOUTME: Defines decoded buffers of interleaved float32 samples
package audio

import "time"

// Buffer holds fully decoded PCM audio. Samples are interleaved by
// channel: len(Samples) == Frames * Channels. A Buffer is immutable
// once constructed and safe to share across goroutines by reference.
type Buffer struct {
	Samples    []float32
	Frames     int
	Channels   int
	SampleRate int
}

// Empty reports whether the buffer holds no playable audio.
func (b *Buffer) Empty() bool {
	return b == nil || b.Frames == 0 || b.Channels == 0 || len(b.Samples) == 0
}

// Duration returns the buffer length in wall-clock time.
func (b *Buffer) Duration() time.Duration {
	if b.Empty() || b.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(b.Frames) / float64(b.SampleRate) * float64(time.Second))
}
