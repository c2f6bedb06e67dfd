// ABOUTME: Band-limited interpolation kernel bank
// ABOUTME: Windowed-sinc filters, one row per fractional sample offset
package engine

import (
	"math"
	"sync"
)

const (
	// kernelTaps is the filter length. Tap kernelTaps/2-1 aligns with
	// the base integer sample at zero fractional offset.
	kernelTaps = 16

	// kernelSteps is the number of fractional offsets covering one
	// sample period.
	kernelSteps = 1024

	// kaiserBeta is the Kaiser window shape parameter.
	kaiserBeta = 6.0
)

// kernelTable holds one normalized windowed-sinc filter per
// fractional offset. Built once, read-only afterwards, shared by all
// voices on both threads.
type kernelTable struct {
	rows [kernelSteps][kernelTaps]float32
}

var (
	kernelOnce  sync.Once
	sharedTable *kernelTable
)

// interpolationKernel returns the process-wide kernel table, building
// it on first use.
func interpolationKernel() *kernelTable {
	kernelOnce.Do(func() {
		sharedTable = buildKernelTable()
	})
	return sharedTable
}

func buildKernelTable() *kernelTable {
	t := &kernelTable{}
	center := float64(kernelTaps/2 - 1)

	var window [kernelTaps]float64
	for i := 0; i < kernelTaps; i++ {
		x := 2.0*float64(i)/float64(kernelTaps-1) - 1.0
		window[i] = besselI0(kaiserBeta*math.Sqrt(1.0-x*x)) / besselI0(kaiserBeta)
	}

	for step := 0; step < kernelSteps; step++ {
		f := float64(step) / float64(kernelSteps)

		var row [kernelTaps]float64
		sum := 0.0
		for i := 0; i < kernelTaps; i++ {
			d := (float64(i) - center) - f
			row[i] = sinc(d) * window[i]
			sum += row[i]
		}

		// Renormalize to unity gain at DC. A degenerate near-zero sum
		// is left as-is rather than divided through.
		if math.Abs(sum) > 1e-12 {
			inv := 1.0 / sum
			for i := range row {
				row[i] *= inv
			}
		}

		for i := range row {
			t.rows[step][i] = float32(row[i])
		}
	}

	return t
}

// sinc computes sin(pi*x)/(pi*x) with sinc(0) = 1.
func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// besselI0 approximates the zeroth-order modified Bessel function of
// the first kind with the standard two-branch polynomial fit
// (Abramowitz & Stegun 9.8.1/9.8.2, ~1e-7 accuracy).
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		t := x / 3.75
		t *= t
		return 1.0 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}
	t := 3.75 / ax
	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + t*(0.01328592+t*(0.00225319+t*(-0.00157565+
			t*(0.00916281+t*(-0.02057706+t*(0.02635537+
				t*(-0.01647633+t*0.00392377))))))))
}
