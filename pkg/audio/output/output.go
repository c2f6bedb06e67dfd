// ABOUTME: Audio output stream interface and lifecycle states
// ABOUTME: Common contract for pull-model playback backends
package output

// State describes the lifecycle of an output stream.
type State int32

const (
	StateClosed State = iota
	StateOpen
	StateStarting
	StateStarted
	StateStopping
	StateStopped
	StateDisconnected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateStarting:
		return "Starting"
	case StateStarted:
		return "Started"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	case StateDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// RenderFunc fills out with frames*channels interleaved float32
// samples. It runs on the stream's playback goroutine under a
// real-time deadline: it must not block or allocate.
type RenderFunc func(out []float32, frames, channels int)

// ErrorCallback receives stream errors around close.
type ErrorCallback func(err error)

// Stream is a platform audio output consuming a render callback.
type Stream interface {
	// Open prepares the device and installs the render callback.
	Open(sampleRate, channels int, render RenderFunc) error

	// Start begins pulling audio from the render callback.
	Start() error

	// Stop pauses playback; the stream can be started again.
	Stop() error

	// Close releases the device.
	Close() error

	// State reports the current lifecycle state.
	State() State
}
