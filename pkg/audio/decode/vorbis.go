// ABOUTME: Ogg Vorbis decoder backed by jfreymuth/oggvorbis
// ABOUTME: Decodes a whole Vorbis stream to interleaved float32 PCM
package decode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/platterlabs/platter/pkg/audio"
)

// VorbisDecoder decodes Ogg Vorbis streams.
type VorbisDecoder struct{}

// Decode converts an Ogg Vorbis stream to a PCM buffer.
func (VorbisDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis decode error: %w", err)
	}

	return &audio.Buffer{
		Samples:    samples,
		Frames:     len(samples) / format.Channels,
		Channels:   format.Channels,
		SampleRate: format.SampleRate,
	}, nil
}
