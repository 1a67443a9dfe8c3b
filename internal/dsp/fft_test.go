package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitudeSpectrum(t *testing.T) {
	t.Run("pure_tone_peaks_at_its_bin", func(t *testing.T) {
		const n = 1024
		const bin = 40
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(2 * math.Pi * float64(bin) * float64(i) / n)
		}

		mag := MagnitudeSpectrum(x)
		require.Len(t, mag, n)

		best := 0
		for k := 1; k <= n/2; k++ {
			if mag[k] > mag[best] {
				best = k
			}
		}
		assert.Equal(t, bin, best)
		// A unit sine concentrates n/2 of magnitude in its bin.
		assert.InDelta(t, float64(n)/2, mag[bin], 1e-6)
	})

	t.Run("upper_half_mirrors_lower", func(t *testing.T) {
		x := []float64{0.3, -0.1, 0.7, 0.2, -0.5, 0.4, 0.1, -0.2}
		mag := MagnitudeSpectrum(x)
		require.Len(t, mag, len(x))
		for k := 1; k < len(x)/2; k++ {
			assert.InDelta(t, mag[k], mag[len(x)-k], 1e-12)
		}
	})

	t.Run("dc_only", func(t *testing.T) {
		mag := MagnitudeSpectrum([]float64{1, 1, 1, 1})
		require.Len(t, mag, 4)
		assert.InDelta(t, 4.0, mag[0], 1e-12)
		assert.InDelta(t, 0.0, mag[1], 1e-12)
		assert.InDelta(t, 0.0, mag[2], 1e-12)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, MagnitudeSpectrum(nil))
	})
}

func TestBinFrequency(t *testing.T) {
	assert.InDelta(t, 0.0, BinFrequency(0, 1024, 22050), 1e-12)
	assert.InDelta(t, 22050.0/2, BinFrequency(512, 1024, 22050), 1e-9)
	assert.InDelta(t, 1000.0, BinFrequency(1000, 22050, 22050), 1e-9)
	assert.InDelta(t, 0.0, BinFrequency(5, 0, 22050), 1e-12)
}

func TestNextPow2(t *testing.T) {
	assert.Equal(t, 1, nextPow2(1))
	assert.Equal(t, 2, nextPow2(2))
	assert.Equal(t, 4, nextPow2(3))
	assert.Equal(t, 1024, nextPow2(1000))
	assert.Equal(t, 1024, nextPow2(1024))
}
