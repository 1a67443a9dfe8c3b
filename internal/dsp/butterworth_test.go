package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filteredAmplitude runs a sinusoid at the given normalized frequency
// through the zero-phase filter and measures the peak amplitude over the
// middle of the signal, away from edge transients.
func filteredAmplitude(t *testing.T, sections []SOS, freqNorm float64) float64 {
	t.Helper()

	const n = 8192
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(math.Pi * freqNorm * float64(i))
	}

	y := FiltFilt(sections, x)
	require.Len(t, y, n)
	require.True(t, AllFinite(y))

	peak := 0.0
	for i := n / 4; i < 3*n/4; i++ {
		if a := math.Abs(y[i]); a > peak {
			peak = a
		}
	}
	return peak
}

func TestDesignBandpass_SectionCount(t *testing.T) {
	tests := []struct {
		name  string
		order int
		want  int
	}{
		{"even_order", 6, 6},
		{"odd_order", 5, 5},
		{"first_order", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := DesignBandpass(tt.order, 0.05, 0.15)
			require.NoError(t, err)
			assert.Len(t, sections, tt.want)
			for _, s := range sections {
				assert.InDelta(t, 1.0, s.A[0], 1e-12)
			}
		})
	}
}

func TestDesignBandpass_InvalidCorners(t *testing.T) {
	tests := []struct {
		name   string
		order  int
		lo, hi float64
	}{
		{"zero_order", 0, 0.1, 0.2},
		{"lo_not_positive", 4, 0, 0.2},
		{"hi_at_nyquist", 4, 0.1, 1.0},
		{"inverted_band", 4, 0.3, 0.1},
		{"equal_corners", 4, 0.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := DesignBandpass(tt.order, tt.lo, tt.hi)
			assert.Error(t, err)
			assert.Nil(t, sections)
		})
	}
}

func TestDesignBandpass_FrequencyResponse(t *testing.T) {
	// Passband 0.08..0.12 of Nyquist, the shape used around a 1 kHz tone
	// at 22050 Hz.
	sections, err := DesignBandpass(6, 0.08, 0.12)
	require.NoError(t, err)

	t.Run("passband_center_near_unity", func(t *testing.T) {
		peak := filteredAmplitude(t, sections, 0.10)
		// Zero-phase filtering squares the magnitude response, still
		// near one at the center of the band.
		assert.InDelta(t, 1.0, peak, 0.05)
	})

	t.Run("stopband_below_attenuated", func(t *testing.T) {
		peak := filteredAmplitude(t, sections, 0.03)
		assert.Less(t, peak, 0.01)
	})

	t.Run("stopband_above_attenuated", func(t *testing.T) {
		peak := filteredAmplitude(t, sections, 0.25)
		assert.Less(t, peak, 0.01)
	})
}

func TestFiltFilt_ZeroPhase(t *testing.T) {
	// A zero-phase filter must not shift the peak of a symmetric pulse.
	sections, err := DesignBandpass(4, 0.05, 0.4)
	require.NoError(t, err)

	const n = 2048
	x := make([]float64, n)
	center := n / 2
	for i := range x {
		d := float64(i - center)
		x[i] = math.Exp(-d * d / 200)
	}

	y := FiltFilt(sections, x)
	require.Len(t, y, n)

	peakIdx := 0
	for i, v := range y {
		if v > y[peakIdx] {
			peakIdx = i
		}
	}
	assert.InDelta(t, float64(center), float64(peakIdx), 2)
}

func TestFiltFilt_ShortInput(t *testing.T) {
	sections, err := DesignBandpass(6, 0.1, 0.3)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, FiltFilt(sections, nil))
	})

	t.Run("shorter_than_padding", func(t *testing.T) {
		x := []float64{0.1, 0.5, -0.2, 0.3, 0.0}
		y := FiltFilt(sections, x)
		assert.Len(t, y, len(x))
		assert.True(t, AllFinite(y))
	})
}

func TestAllFinite(t *testing.T) {
	assert.True(t, AllFinite([]float64{0, 1, -1, 1e300}))
	assert.True(t, AllFinite(nil))
	assert.False(t, AllFinite([]float64{0, math.NaN()}))
	assert.False(t, AllFinite([]float64{math.Inf(1)}))
	assert.False(t, AllFinite([]float64{math.Inf(-1), 2}))
}
