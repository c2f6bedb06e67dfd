// ABOUTME: Scratch playback engine facade
// ABOUTME: Owns voices, shared parameters, track lists, and the mix callback
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/platterlabs/platter/pkg/audio/decode"
	"github.com/platterlabs/platter/pkg/audio/output"
)

var (
	// ErrNotInitialized means Init was not called or failed.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrInvalidUnityRate rejects a non-positive unity-rate reference.
	ErrInvalidUnityRate = errors.New("unity-rate reference must be positive")
)

// Config holds engine configuration. Zero fields take defaults.
type Config struct {
	// PlatterPaths are base asset paths for scratchable samples.
	PlatterPaths []string

	// TrackPaths are base asset paths for backing music tracks.
	TrackPaths []string

	// Sensitivity scales gesture input into playback rate.
	Sensitivity float64

	// MusicVolume is the initial master music volume (0-1).
	MusicVolume float64

	// SampleRate and Channels describe the output stream format.
	SampleRate int
	Channels   int
}

// Engine is the playback engine. One control goroutine issues
// commands; the stream's playback goroutine calls render. All shared
// state crosses that boundary through atomics.
type Engine struct {
	cfg    Config
	shared params

	platter *Voice
	music   *Voice

	loader *decode.Loader
	stream output.Stream

	// Path lists are touched only on the control thread; the indices
	// are atomic because defaults say nothing about caller discipline.
	platterPaths []string
	trackPaths   []string
	platterIdx   atomic.Int64
	trackIdx     atomic.Int64
}

// New creates an engine. The host owns its lifetime: Init on startup,
// Release on teardown.
func New(cfg Config) *Engine {
	if cfg.PlatterPaths == nil {
		cfg.PlatterPaths = []string{"sounds/haahhh", "sounds/sample1", "sounds/sample2"}
	}
	if cfg.TrackPaths == nil {
		cfg.TrackPaths = []string{"tracks/trackA", "tracks/trackB"}
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = 0.17
	}
	if cfg.MusicVolume == 0 {
		cfg.MusicVolume = 0.9
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}

	e := &Engine{
		cfg:          cfg,
		platterPaths: append([]string(nil), cfg.PlatterPaths...),
		trackPaths:   append([]string(nil), cfg.TrackPaths...),
	}
	e.shared.platterRate.Store(1.0)
	e.shared.sensitivity.Store(cfg.Sensitivity)
	e.shared.musicVolume.Store(cfg.MusicVolume)
	e.shared.platterFader.Store(0.0)
	e.platter = newVoice(&e.shared)
	e.music = newVoice(&e.shared)
	return e
}

// Init wires the asset loader and opens the output stream with the
// engine's render callback. Pass a nil stream to run headless.
func (e *Engine) Init(loader *decode.Loader, stream output.Stream) error {
	e.loader = loader
	e.stream = stream

	if stream != nil {
		if err := stream.Open(e.cfg.SampleRate, e.cfg.Channels, e.render); err != nil {
			return fmt.Errorf("failed to open output stream: %w", err)
		}
	}

	log.Printf("Engine initialized: %dHz, %d channels, sensitivity %.4f",
		e.cfg.SampleRate, e.cfg.Channels, e.shared.sensitivity.Load())
	return nil
}

// Release stops and closes the stream.
func (e *Engine) Release() {
	if e.stream != nil {
		if err := e.stream.Stop(); err != nil {
			log.Printf("Stream stop on release: %v", err)
		}
		if err := e.stream.Close(); err != nil {
			log.Printf("Stream close on release: %v", err)
		}
	}
	log.Printf("Engine released")
}

// StartStream begins pulling audio from the render callback.
func (e *Engine) StartStream() error {
	if e.stream == nil {
		return ErrNotInitialized
	}
	return e.stream.Start()
}

// StopStream pauses the output stream.
func (e *Engine) StopStream() error {
	if e.stream == nil {
		return ErrNotInitialized
	}
	return e.stream.Stop()
}

// render is the real-time mix callback: zero-fill, then accumulate
// each active voice. It must not allocate, block, or log.
func (e *Engine) render(out []float32, frames, channels int) {
	for i := range out {
		out[i] = 0
	}

	platterGain := e.shared.platterFader.Load()
	// During the unlooped intro, while untouched and not yet under
	// external rate control, the platter plays at music volume so the
	// intro is audible with the fader down.
	if e.platter.introPending() && !e.shared.fingerDown.Load() && !e.platter.usingEngineRate() {
		platterGain = e.shared.musicVolume.Load()
	}
	e.platter.render(out, frames, channels, float32(platterGain))

	if e.music.playing() {
		e.music.render(out, frames, channels, float32(e.shared.musicVolume.Load()))
	}
}

// load resolves and decodes a base path into the voice. On failure
// the voice is left silent with the base path recorded.
func (e *Engine) load(v *Voice, basePath string) error {
	if e.loader == nil {
		return ErrNotInitialized
	}
	buf, resolved, err := e.loader.Load(basePath)
	if err != nil {
		v.setTrack(nil, basePath)
		return err
	}
	v.setTrack(buf, resolved)
	return nil
}

// PlayIntroThenLoop loads a platter sample by base path, plays it once
// at unity rate, then loops it silently behind the fader.
func (e *Engine) PlayIntroThenLoop(basePath string) error {
	idx := 0
	if len(e.platterPaths) == 0 {
		e.platterPaths = append(e.platterPaths, basePath)
	} else if found := indexOf(e.platterPaths, basePath); found >= 0 {
		idx = found
	} else {
		log.Printf("Base path %q not in platter list, using index 0", basePath)
	}
	e.platterIdx.Store(int64(idx))

	if err := e.load(e.platter, e.platterPaths[idx]); err != nil {
		return fmt.Errorf("intro sample: %w", err)
	}

	e.platter.startIntroThenLoop()
	e.shared.platterRate.Store(1.0)
	e.SetPlatterVolume(0.0)
	log.Printf("Intro sample loaded as %s, will play once then loop", e.platter.path())
	return nil
}

// NextSample advances to the next platter sample and loops it.
func (e *Engine) NextSample() error {
	if len(e.platterPaths) == 0 {
		return fmt.Errorf("no platter samples configured")
	}
	idx := int(e.platterIdx.Add(1)) % len(e.platterPaths)
	e.platterIdx.Store(int64(idx))

	if err := e.load(e.platter, e.platterPaths[idx]); err != nil {
		return fmt.Errorf("next sample: %w", err)
	}

	e.platter.startLoop()
	e.shared.platterRate.Store(1.0)
	log.Printf("Platter sample loaded as %s", e.platter.path())
	return nil
}

// PlayTrack plays the current music track. A track that is already
// playing restarts from the top without reloading.
func (e *Engine) PlayTrack() error {
	if len(e.trackPaths) == 0 {
		return fmt.Errorf("no music tracks configured")
	}
	idx := int(e.trackIdx.Load()) % len(e.trackPaths)
	base := e.trackPaths[idx]

	if e.music.playing() && resolvesTo(e.music.path(), base) {
		log.Printf("Track %s already playing, restarting", e.music.path())
		e.music.restart()
		return nil
	}

	if err := e.load(e.music, base); err != nil {
		return fmt.Errorf("music track: %w", err)
	}
	e.music.startOnce()
	log.Printf("Playing music track %s", e.music.path())
	return nil
}

// StopTrack stops the music voice, preserving its position.
func (e *Engine) StopTrack() {
	e.music.stop()
	log.Printf("Stopped music track %s", e.music.path())
}

// NextTrackAndPlay advances the track list and plays.
func (e *Engine) NextTrackAndPlay() error {
	if len(e.trackPaths) == 0 {
		return fmt.Errorf("no music tracks configured")
	}
	e.trackIdx.Store(e.trackIdx.Add(1) % int64(len(e.trackPaths)))
	return e.PlayTrack()
}

// NextTrackKeepState advances and loads the next track, resuming
// playback only if a track was playing.
func (e *Engine) NextTrackKeepState() error {
	if len(e.trackPaths) == 0 {
		return fmt.Errorf("no music tracks configured")
	}
	wasPlaying := e.music.playing()
	idx := int(e.trackIdx.Add(1)) % len(e.trackPaths)
	e.trackIdx.Store(int64(idx))

	if err := e.load(e.music, e.trackPaths[idx]); err != nil {
		return fmt.Errorf("next track: %w", err)
	}
	if wasPlaying {
		e.music.startOnce()
		log.Printf("Resuming playback with %s", e.music.path())
	} else {
		log.Printf("Loaded %s, staying stopped", e.music.path())
	}
	return nil
}

// SetPlatterVolume sets the platter fader volume, clamped to [0, 1].
func (e *Engine) SetPlatterVolume(v float64) {
	e.shared.platterFader.Store(clamp01(v))
}

// SetMusicVolume sets the master music volume, clamped to [0, 1].
func (e *Engine) SetMusicVolume(v float64) {
	e.shared.musicVolume.Store(clamp01(v))
}

// SetSensitivity sets the scratch sensitivity scalar.
func (e *Engine) SetSensitivity(s float64) {
	e.shared.sensitivity.Store(s)
	log.Printf("Scratch sensitivity set to %.4f", s)
}

// SetUnityRateReference sets the angular delta corresponding to unity
// playback rate. Non-positive values are rejected and the previous
// reference kept.
func (e *Engine) SetUnityRateReference(degrees float64) error {
	if degrees <= 0 {
		return fmt.Errorf("%w: %f", ErrInvalidUnityRate, degrees)
	}
	e.shared.degreesPerUnityRate.Store(degrees)
	return nil
}

// ScratchActive feeds a gesture sample into the platter. While
// touching, value is the angular delta since the last sample; after
// release the host keeps calling with touching=false and its decaying
// coast rate.
func (e *Engine) ScratchActive(touching bool, value float64) {
	e.shared.fingerDown.Store(touching)

	if !e.platter.loaded() {
		if touching {
			log.Printf("Scratch on unloaded platter sample ignored")
		}
		e.platter.setUseEngineRate(false)
		return
	}

	e.platter.setUseEngineRate(true)
	rate, shouldPlay := ComputeRate(touching, value,
		e.shared.sensitivity.Load(), e.shared.degreesPerUnityRate.Load())
	e.shared.platterRate.Store(rate)
	e.platter.setPlaying(shouldPlay)
}

// ReleaseTouch clears the touch flag. Coast values keep arriving via
// ScratchActive(false, rate), so the platter stays under engine rate.
func (e *Engine) ReleaseTouch() {
	e.shared.fingerDown.Store(false)
	if e.platter.loaded() {
		e.platter.setUseEngineRate(true)
	}
}

// PlatterVolume returns the current fader volume.
func (e *Engine) PlatterVolume() float64 { return e.shared.platterFader.Load() }

// MusicVolume returns the current master music volume.
func (e *Engine) MusicVolume() float64 { return e.shared.musicVolume.Load() }

// Sensitivity returns the current scratch sensitivity.
func (e *Engine) Sensitivity() float64 { return e.shared.sensitivity.Load() }

// PlatterRate returns the current platter playback rate.
func (e *Engine) PlatterRate() float64 { return e.shared.platterRate.Load() }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// resolvesTo reports whether a resolved asset path came from the
// given base path under the loader's probing rules.
func resolvesTo(resolved, base string) bool {
	if resolved == base {
		return true
	}
	for _, ext := range []string{".mp3", ".wav", ".ogg"} {
		if resolved == base+ext {
			return true
		}
	}
	return false
}
