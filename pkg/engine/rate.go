// ABOUTME: Gesture-to-playback-rate transform
// ABOUTME: Pure function mapping touch deltas and coast rates to voice rate
package engine

import "math"

const (
	// MovementThreshold is the angular delta below which a held touch
	// counts as stationary (a stalled record).
	MovementThreshold = 0.001

	// MaxRate bounds the playback rate magnitude while scratching.
	MaxRate = 4.0

	// silenceRateEpsilon is the rate magnitude treated as stopped.
	silenceRateEpsilon = 1e-5
)

// ComputeRate converts raw gesture input into a playback rate and a
// play/stop decision for the platter voice.
//
// While touching, rawInput is the angular delta since the last sample:
// deltas at or below MovementThreshold hold the record still, larger
// deltas are normalized by degreesPerUnityRate (used raw when the
// reference is degenerate), scaled by sensitivity and clamped to
// [-MaxRate, MaxRate].
//
// When not touching, rawInput is an already-normalized coast rate
// supplied by the host's release-momentum model and passes through
// unclamped; playback continues while it stays above the silence
// epsilon.
func ComputeRate(touchActive bool, rawInput, sensitivity, degreesPerUnityRate float64) (rate float64, shouldPlay bool) {
	if touchActive {
		if math.Abs(rawInput) <= MovementThreshold {
			return 0, false
		}
		normalized := rawInput
		if math.Abs(degreesPerUnityRate) > silenceRateEpsilon {
			normalized = rawInput / degreesPerUnityRate
		}
		rate = normalized * sensitivity
		if rate > MaxRate {
			rate = MaxRate
		} else if rate < -MaxRate {
			rate = -MaxRate
		}
		return rate, true
	}

	return rawInput, math.Abs(rawInput) > silenceRateEpsilon
}
