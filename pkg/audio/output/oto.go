// ABOUTME: Oto-based audio output implementation
// ABOUTME: Pull-model stream feeding a render callback through oto's player
package output

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// Oto is a Stream backed by the oto library. The oto player reads
// 16-bit little-endian PCM from a pullReader, which in turn invokes
// the render callback on oto's playback goroutine.
type Oto struct {
	otoCtx *oto.Context
	player *oto.Player
	reader *pullReader
	state  atomic.Int32

	onErrorBeforeClose ErrorCallback
	onErrorAfterClose  ErrorCallback
}

// NewOto creates an unopened oto stream.
func NewOto() *Oto {
	return &Oto{}
}

// SetErrorCallbacks installs callbacks fired before and after close
// when the underlying player reports an error. Nil callbacks are
// ignored. Must be called before Close.
func (o *Oto) SetErrorCallbacks(before, after ErrorCallback) {
	o.onErrorBeforeClose = before
	o.onErrorAfterClose = after
}

// Open initializes the oto context. oto allows a single context per
// process, so Open fails on a second call with a different format.
func (o *Oto) Open(sampleRate, channels int, render RenderFunc) error {
	if o.otoCtx != nil {
		return fmt.Errorf("stream already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.reader = newPullReader(render, channels)
	o.state.Store(int32(StateOpen))

	log.Printf("Audio output opened: %dHz, %d channels", sampleRate, channels)
	return nil
}

// Start begins playback.
func (o *Oto) Start() error {
	switch o.State() {
	case StateStarted, StateStarting:
		log.Printf("Stream already started or starting")
		return nil
	case StateClosed, StateDisconnected:
		return fmt.Errorf("cannot start stream: %w", ErrClosed)
	}
	if o.otoCtx == nil {
		return ErrNotOpen
	}

	o.state.Store(int32(StateStarting))
	if o.player == nil {
		o.player = o.otoCtx.NewPlayer(o.reader)
	}
	o.player.Play()
	o.state.Store(int32(StateStarted))
	return nil
}

// Stop pauses playback; Start resumes it.
func (o *Oto) Stop() error {
	switch o.State() {
	case StateStopped, StateStopping:
		log.Printf("Stream already stopped or stopping")
		return nil
	case StateClosed, StateDisconnected:
		return fmt.Errorf("cannot stop stream: %w", ErrClosed)
	}
	if o.player == nil {
		return ErrNotOpen
	}

	o.state.Store(int32(StateStopping))
	o.player.Pause()
	o.state.Store(int32(StateStopped))
	return nil
}

// Close releases the player and suspends the oto context. Player
// errors are surfaced through the error callbacks, not returned.
func (o *Oto) Close() error {
	if o.player != nil {
		if err := o.player.Err(); err != nil && o.onErrorBeforeClose != nil {
			o.onErrorBeforeClose(err)
		}
		if err := o.player.Close(); err != nil {
			log.Printf("Player close error: %v", err)
			if o.onErrorAfterClose != nil {
				o.onErrorAfterClose(err)
			}
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.otoCtx = nil
	}
	o.state.Store(int32(StateClosed))
	return nil
}

// State reports the current lifecycle state.
func (o *Oto) State() State {
	return State(o.state.Load())
}
