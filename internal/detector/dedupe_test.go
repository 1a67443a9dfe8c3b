package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validated(timeMs, confidence float64) ValidatedDetection {
	return ValidatedDetection{
		RefinedDetection: RefinedDetection{
			DetectionCandidate: DetectionCandidate{TimeMs: timeMs, Confidence: confidence},
		},
	}
}

func TestDedupe(t *testing.T) {
	t.Run("keeps_strongest_within_window", func(t *testing.T) {
		in := []ValidatedDetection{
			validated(1000, 0.7),
			validated(1050, 0.9), // 50 ms later, stronger
			validated(5000, 0.8),
		}

		out := dedupe(in, 100)
		require.Len(t, out, 2)
		assert.InDelta(t, 1050, out[0].TimeMs, 0)
		assert.InDelta(t, 0.9, out[0].Confidence, 0)
		assert.InDelta(t, 5000, out[1].TimeMs, 0)
	})

	t.Run("outside_window_both_survive", func(t *testing.T) {
		in := []ValidatedDetection{
			validated(1000, 0.7),
			validated(1150, 0.9),
		}

		out := dedupe(in, 100)
		assert.Len(t, out, 2)
	})

	t.Run("window_boundary_is_exclusive", func(t *testing.T) {
		in := []ValidatedDetection{
			validated(1000, 0.7),
			validated(1100, 0.9), // exactly the window apart
		}

		out := dedupe(in, 100)
		assert.Len(t, out, 2)
	})

	t.Run("result_sorted_by_time", func(t *testing.T) {
		in := []ValidatedDetection{
			validated(9000, 0.5),
			validated(2000, 0.9),
			validated(4000, 0.7),
		}

		out := dedupe(in, 100)
		require.Len(t, out, 3)
		assert.InDelta(t, 2000, out[0].TimeMs, 0)
		assert.InDelta(t, 4000, out[1].TimeMs, 0)
		assert.InDelta(t, 9000, out[2].TimeMs, 0)
	})

	t.Run("chain_collapses_to_strongest", func(t *testing.T) {
		// The strongest detection wins its window; the one far enough
		// from it survives even though a removed neighbor sat between.
		in := []ValidatedDetection{
			validated(1000, 0.6),
			validated(1080, 0.9),
			validated(1185, 0.7),
		}

		out := dedupe(in, 100)
		require.Len(t, out, 2)
		assert.InDelta(t, 1080, out[0].TimeMs, 0)
		assert.InDelta(t, 1185, out[1].TimeMs, 0)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []ValidatedDetection{
			validated(1000, 0.7),
			validated(1050, 0.9),
			validated(3000, 0.8),
		}

		once := dedupe(in, 100)
		twice := dedupe(once, 100)
		assert.Equal(t, once, twice)
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Nil(t, dedupe(nil, 100))
	})
}
