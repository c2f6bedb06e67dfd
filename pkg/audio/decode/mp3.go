// ABOUTME: MP3 decoder backed by hajimehoshi/go-mp3
// ABOUTME: Decodes a whole MP3 stream to interleaved float32 PCM
package decode

import (
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/platterlabs/platter/pkg/audio"
)

// MP3Decoder decodes MP3 streams. go-mp3 always emits 16-bit stereo.
type MP3Decoder struct{}

// Decode converts an MP3 stream to a PCM buffer.
func (MP3Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	const channels = 2
	numSamples := len(raw) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		s := int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
		samples[i] = float32(s) / 32768.0
	}

	return &audio.Buffer{
		Samples:    samples,
		Frames:     numSamples / channels,
		Channels:   channels,
		SampleRate: dec.SampleRate(),
	}, nil
}
