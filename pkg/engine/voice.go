// ABOUTME: Single playback voice with a fractional cursor
// ABOUTME: Band-limited rendering at arbitrary signed rates with loop handling
package engine

import (
	"math"
	"sync/atomic"

	"github.com/platterlabs/platter/pkg/audio"
)

// track is one voice activation: a decoded buffer plus all mutable
// playback state. A load publishes a fresh track through the voice's
// atomic pointer so the audio thread can never observe a new buffer
// with a stale cursor. Old tracks stay valid until the collector
// reclaims them, which cannot happen while a render call still holds
// the pointer.
type track struct {
	buf  *audio.Buffer
	path string

	pos           atomicFloat64
	playing       atomic.Bool
	looping       atomic.Bool
	introThenLoop atomic.Bool
	introDone     atomic.Bool
	useEngineRate atomic.Bool
}

// Voice renders one independently playing sound into a shared output
// buffer. Shared rate parameters are read through a non-owning
// reference to the engine's params.
type Voice struct {
	shared *params
	cur    atomic.Pointer[track]
	kernel *kernelTable
}

func newVoice(shared *params) *Voice {
	v := &Voice{
		shared: shared,
		kernel: interpolationKernel(),
	}
	v.cur.Store(&track{buf: &audio.Buffer{}})
	return v
}

// setTrack publishes a new buffer with reset playback state. Pass an
// empty buffer to silence the voice after a failed load.
func (v *Voice) setTrack(buf *audio.Buffer, path string) {
	if buf == nil {
		buf = &audio.Buffer{}
	}
	v.cur.Store(&track{buf: buf, path: path})
}

// startIntroThenLoop plays the buffer once from the top, then keeps
// looping silently (the host drops the fader before the wrap).
func (v *Voice) startIntroThenLoop() {
	t := v.cur.Load()
	t.introThenLoop.Store(true)
	t.introDone.Store(false)
	t.looping.Store(false)
	t.pos.Store(0)
	t.playing.Store(true)
}

// startLoop plays the buffer from the top, looping indefinitely.
func (v *Voice) startLoop() {
	t := v.cur.Load()
	t.introThenLoop.Store(false)
	t.looping.Store(true)
	t.pos.Store(0)
	t.playing.Store(true)
}

// startOnce plays the buffer from the top exactly once.
func (v *Voice) startOnce() {
	t := v.cur.Load()
	t.introThenLoop.Store(false)
	t.looping.Store(false)
	t.pos.Store(0)
	t.playing.Store(true)
}

// stop halts playback, preserving the cursor.
func (v *Voice) stop() {
	v.cur.Load().playing.Store(false)
}

// restart rewinds the cursor without touching any other state.
func (v *Voice) restart() {
	v.cur.Load().pos.Store(0)
}

func (v *Voice) setUseEngineRate(use bool) {
	v.cur.Load().useEngineRate.Store(use)
}

func (v *Voice) setPlaying(playing bool) {
	v.cur.Load().playing.Store(playing)
}

func (v *Voice) playing() bool { return v.cur.Load().playing.Load() }
func (v *Voice) loaded() bool  { return !v.cur.Load().buf.Empty() }
func (v *Voice) path() string  { return v.cur.Load().path }

// introPending reports whether the voice is still in the unlooped
// intro phase of a one-shot-then-loop activation.
func (v *Voice) introPending() bool {
	t := v.cur.Load()
	return t.introThenLoop.Load() && !t.introDone.Load()
}

func (v *Voice) usingEngineRate() bool {
	return v.cur.Load().useEngineRate.Load()
}

// render accumulates up to numFrames of audio into out (interleaved,
// outChannels wide) at the given gain. Runs on the audio thread only.
func (v *Voice) render(out []float32, numFrames, outChannels int, gain float32) {
	t := v.cur.Load()
	if !t.playing.Load() || t.buf.Empty() {
		return
	}

	pos := t.pos.Load()
	total := float64(t.buf.Frames)
	useEngineRate := t.useEngineRate.Load()

	for i := 0; i < numFrames; i++ {
		rate := 1.0
		if useEngineRate {
			rate = v.shared.platterRate.Load()
			// A held-but-stationary touch keeps the voice nominally
			// playing at rate zero; emit silence without advancing.
			if math.IsNaN(rate) || math.Abs(rate) < silenceRateEpsilon {
				continue
			}
		}

		if math.IsNaN(pos) {
			pos = 0
		}
		if pos < 0 || pos >= total {
			switch {
			case t.introThenLoop.Load() && !t.introDone.Load():
				t.introDone.Store(true)
				t.looping.Store(true)
				pos = 0
			case t.looping.Load():
				pos = math.Mod(pos, total)
				if pos < 0 {
					pos += total
				}
			default:
				t.playing.Store(false)
			}
			if !t.playing.Load() {
				break
			}
		}

		base := int(math.Floor(pos))
		frac := pos - math.Floor(pos)
		row := int(math.Round(frac * kernelSteps))
		if row >= kernelSteps {
			row = kernelSteps - 1
		} else if row < 0 {
			row = 0
		}
		coeffs := &v.kernel.rows[row]

		for ch := 0; ch < outChannels; ch++ {
			srcCh := ch % t.buf.Channels
			var acc float32
			for k := 0; k < kernelTaps; k++ {
				idx := base + k - (kernelTaps/2 - 1)
				acc += coeffs[k] * t.sampleAt(idx, srcCh)
			}
			out[i*outChannels+ch] += acc * gain
		}

		pos += rate
	}

	t.pos.Store(pos)
}

// sampleAt fetches one source sample with the voice's boundary
// policy: floored modulo when looping, edge clamp otherwise.
func (t *track) sampleAt(frame, channel int) float32 {
	n := t.buf.Frames
	if frame < 0 || frame >= n {
		if t.looping.Load() {
			frame %= n
			if frame < 0 {
				frame += n
			}
		} else if frame < 0 {
			frame = 0
		} else {
			frame = n - 1
		}
	}
	return t.buf.Samples[frame*t.buf.Channels+channel]
}
