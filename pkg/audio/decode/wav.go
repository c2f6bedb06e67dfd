// ABOUTME: WAV decoder backed by go-audio/wav
// ABOUTME: Decodes PCM WAV files to interleaved float32 PCM
package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/platterlabs/platter/pkg/audio"
)

// WAVDecoder decodes PCM WAV streams.
type WAVDecoder struct{}

// Decode converts a WAV stream to a PCM buffer.
func (WAVDecoder) Decode(r io.Reader) (*audio.Buffer, error) {
	// go-audio/wav needs a ReadSeeker to walk RIFF chunks.
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read wav stream: %w", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(raw))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid wav file")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode error: %w", err)
	}
	if pcm == nil || pcm.Format == nil || len(pcm.Data) == 0 {
		return nil, fmt.Errorf("wav stream holds no pcm data")
	}

	bitDepth := pcm.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	samples := make([]float32, len(pcm.Data))
	for i, s := range pcm.Data {
		samples[i] = float32(s) / scale
	}

	channels := pcm.Format.NumChannels
	return &audio.Buffer{
		Samples:    samples,
		Frames:     len(samples) / channels,
		Channels:   channels,
		SampleRate: pcm.Format.SampleRate,
	}, nil
}
