// ABOUTME: Adapter turning a render callback into an io.Reader
// ABOUTME: Converts float32 render output to 16-bit LE PCM for oto
package output

// pullReader bridges oto's byte-oriented pull model to the engine's
// frame-oriented render callback. Read runs on oto's playback
// goroutine; the scratch buffer is reused across calls so steady-state
// reads do not allocate.
type pullReader struct {
	render   RenderFunc
	channels int
	scratch  []float32
}

func newPullReader(render RenderFunc, channels int) *pullReader {
	return &pullReader{
		render:   render,
		channels: channels,
	}
}

// Read fills p with rendered PCM. Partial trailing frames are left for
// the next call by reporting a short read.
func (r *pullReader) Read(p []byte) (int, error) {
	bytesPerFrame := 2 * r.channels
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	n := frames * r.channels
	if cap(r.scratch) < n {
		r.scratch = make([]float32, n)
	}
	buf := r.scratch[:n]

	r.render(buf, frames, r.channels)

	for i, s := range buf {
		v := int16FromSample(s)
		p[i*2] = byte(v)
		p[i*2+1] = byte(uint16(v) >> 8)
	}

	return frames * bytesPerFrame, nil
}

// int16FromSample converts a float sample in [-1, 1] to int16 with
// hard clipping.
func int16FromSample(s float32) int16 {
	if s >= 1 {
		return 32767
	}
	if s <= -1 {
		return -32768
	}
	return int16(s * 32767)
}
