// ABOUTME: Shared engine parameters as independent atomics
// ABOUTME: Control thread stores, audio thread loads, no locks
package engine

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 stores a float64 through its IEEE-754 bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (f *atomicFloat64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *atomicFloat64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// params holds every cross-thread scalar. Each field is independently
// atomic; no ordering is guaranteed between fields and none is needed.
// One callback period of staleness is acceptable.
type params struct {
	platterRate         atomicFloat64
	sensitivity         atomicFloat64
	degreesPerUnityRate atomicFloat64
	platterFader        atomicFloat64
	musicVolume         atomicFloat64
	fingerDown          atomic.Bool
}
