package detector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefinePeaks(t *testing.T) {
	const rate = 1000 // 1 sample = 1 ms

	t.Run("symmetric_peak_stays_put", func(t *testing.T) {
		correlation := []float64{0, 1, 3, 1, 0}
		candidates := []DetectionCandidate{{PeakIndex: 2, TimeMs: 2}}

		refined := refinePeaks(candidates, correlation, rate, true)
		require.Len(t, refined, 1)
		assert.True(t, refined[0].Refined)
		assert.InDelta(t, 2.0, refined[0].TimeMs, 1e-9)
	})

	t.Run("asymmetric_peak_shifts_toward_heavier_side", func(t *testing.T) {
		correlation := []float64{0, 2, 3, 2.5, 0}
		candidates := []DetectionCandidate{{PeakIndex: 2, TimeMs: 2}}

		refined := refinePeaks(candidates, correlation, rate, true)
		require.Len(t, refined, 1)
		assert.True(t, refined[0].Refined)
		// a = (2 - 6 + 2.5)/2, b = (2.5 - 2)/2, offset = -b/(2a) = 1/6.
		assert.InDelta(t, 2+1.0/6, refined[0].TimeMs, 1e-9)
	})

	t.Run("offset_clamped_to_half_sample", func(t *testing.T) {
		correlation := []float64{0, 1, 1.9, 0}
		candidates := []DetectionCandidate{{PeakIndex: 1, TimeMs: 1}}

		refined := refinePeaks(candidates, correlation, rate, true)
		require.Len(t, refined, 1)
		assert.True(t, refined[0].Refined)
		assert.LessOrEqual(t, math.Abs(refined[0].TimeMs-1), 0.5+1e-9)
	})

	t.Run("boundary_peak_passes_unrefined", func(t *testing.T) {
		correlation := []float64{3, 1, 0}
		candidates := []DetectionCandidate{{PeakIndex: 0, TimeMs: 0}}

		refined := refinePeaks(candidates, correlation, rate, true)
		require.Len(t, refined, 1)
		assert.False(t, refined[0].Refined)
		assert.InDelta(t, 0.0, refined[0].TimeMs, 0)
	})

	t.Run("degenerate_curvature_passes_unrefined", func(t *testing.T) {
		correlation := []float64{2, 2, 2}
		candidates := []DetectionCandidate{{PeakIndex: 1, TimeMs: 1}}

		refined := refinePeaks(candidates, correlation, rate, true)
		require.Len(t, refined, 1)
		assert.False(t, refined[0].Refined)
	})

	t.Run("disabled_passes_all_through", func(t *testing.T) {
		correlation := []float64{0, 2, 3, 2.5, 0}
		candidates := []DetectionCandidate{{PeakIndex: 2, TimeMs: 2}}

		refined := refinePeaks(candidates, correlation, rate, false)
		require.Len(t, refined, 1)
		assert.False(t, refined[0].Refined)
		assert.InDelta(t, 2.0, refined[0].TimeMs, 0)
	})
}

func TestRefinePeaks_NeverMovesMoreThanHalfSample(t *testing.T) {
	// Sweep a family of lopsided peaks; the refined position must stay
	// within half a sample of the integer peak.
	for _, right := range []float64{0.1, 0.5, 0.9, 0.99, 0.999} {
		correlation := []float64{0, 1, right * 1}
		candidates := []DetectionCandidate{{PeakIndex: 1, TimeMs: 1}}

		refined := refinePeaks(candidates, correlation, 1000, true)
		require.Len(t, refined, 1)
		offsetMs := refined[0].TimeMs - 1
		assert.LessOrEqual(t, math.Abs(offsetMs), 0.5+1e-9,
			"right neighbor %v moved the peak too far", right)
	}
}
