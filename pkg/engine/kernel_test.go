// ABOUTME: Tests for the windowed-sinc kernel bank
// ABOUTME: Gain preservation, identity at zero offset, Bessel accuracy
package engine

import (
	"math"
	"testing"
)

func TestKernelRowsSumToUnity(t *testing.T) {
	k := interpolationKernel()

	for step := 0; step < kernelSteps; step++ {
		var sum float64
		for _, c := range k.rows[step] {
			sum += float64(c)
		}
		if math.Abs(sum-1.0) > 1e-4 {
			t.Fatalf("row %d sums to %f, want 1.0", step, sum)
		}
	}
}

func TestKernelZeroOffsetIsIdentity(t *testing.T) {
	k := interpolationKernel()

	row := k.rows[0]
	for i, c := range row {
		want := float32(0)
		if i == kernelTaps/2-1 {
			want = 1
		}
		if math.Abs(float64(c-want)) > 1e-6 {
			t.Errorf("tap %d at zero offset: got %f, want %f", i, c, want)
		}
	}
}

func TestKernelBuildIsIdempotent(t *testing.T) {
	a := interpolationKernel()
	b := interpolationKernel()
	if a != b {
		t.Fatal("expected the same shared table on repeat builds")
	}
}

func TestKernelRowsAreSymmetricAtHalfOffset(t *testing.T) {
	k := interpolationKernel()

	// At f=0.5 the filter is centered between taps 7 and 8, so the
	// row must mirror around that midpoint.
	row := k.rows[kernelSteps/2]
	for i := 0; i < kernelTaps/2; i++ {
		a := float64(row[kernelTaps/2-1-i])
		b := float64(row[kernelTaps/2+i])
		if math.Abs(a-b) > 1e-6 {
			t.Errorf("taps %d/%d not symmetric: %f vs %f", kernelTaps/2-1-i, kernelTaps/2+i, a, b)
		}
	}
}

func TestBesselI0(t *testing.T) {
	// Reference values from the series definition.
	cases := []struct {
		x, want float64
	}{
		{0, 1.0},
		{1, 1.2660658777520084},
		{3.75, 9.118937141312187},
		{6, 67.23440697647798},
	}
	for _, c := range cases {
		got := besselI0(c.x)
		if math.Abs(got-c.want)/c.want > 1e-6 {
			t.Errorf("besselI0(%f) = %f, want %f", c.x, got, c.want)
		}
	}
}
