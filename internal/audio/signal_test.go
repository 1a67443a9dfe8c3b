package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_Basics(t *testing.T) {
	s := NewSignal([]float64{0.1, -0.5, 0.3, 0.2}, 22050)

	assert.Equal(t, 4, s.Len())
	assert.InDelta(t, 4.0/22050, s.Seconds(), 1e-12)
	wantSeconds := float64(4) / 22050
	assert.Equal(t, time.Duration(wantSeconds*float64(time.Second)), s.Duration())
	assert.InDelta(t, 0.5, s.PeakAmplitude(), 1e-12)
}

func TestSignal_SliceIsIndependent(t *testing.T) {
	s := NewSignal([]float64{1, 2, 3, 4, 5}, 1000)
	sub := s.Slice(1, 4)

	require.Equal(t, 3, sub.Len())
	assert.InDeltaSlice(t, []float64{2, 3, 4}, sub.Samples, 0)

	sub.Samples[0] = 99
	assert.InDelta(t, 2.0, s.Samples[1], 0, "slicing must copy, not alias")
}

func TestSignal_Normalized(t *testing.T) {
	t.Run("peak_becomes_one", func(t *testing.T) {
		s := NewSignal([]float64{0.2, -0.4, 0.1}, 8000)
		n := s.Normalized()
		assert.InDeltaSlice(t, []float64{0.5, -1, 0.25}, n.Samples, 1e-12)
		// Original untouched.
		assert.InDelta(t, 0.2, s.Samples[0], 0)
	})

	t.Run("silence_unchanged", func(t *testing.T) {
		s := NewSignal([]float64{0, 0, 0}, 8000)
		n := s.Normalized()
		assert.InDeltaSlice(t, []float64{0, 0, 0}, n.Samples, 0)
	})
}

func TestSignal_Resampled(t *testing.T) {
	t.Run("same_rate_is_identity", func(t *testing.T) {
		s := NewSignal([]float64{1, 2, 3}, 22050)
		assert.Same(t, s, s.Resampled(22050))
	})

	t.Run("halving_rate_halves_length", func(t *testing.T) {
		samples := make([]float64, 1000)
		s := NewSignal(samples, 44100)
		r := s.Resampled(22050)
		assert.Equal(t, 22050, r.Rate)
		assert.Equal(t, 500, r.Len())
	})
}

func TestResample(t *testing.T) {
	t.Run("constant_signal_stays_constant", func(t *testing.T) {
		samples := make([]float64, 200)
		for i := range samples {
			samples[i] = 0.7
		}
		out := Resample(samples, 44100, 22050)
		require.Len(t, out, 100)
		for _, v := range out {
			assert.InDelta(t, 0.7, v, 1e-9)
		}
	})

	t.Run("linear_ramp_preserved", func(t *testing.T) {
		samples := make([]float64, 100)
		for i := range samples {
			samples[i] = float64(i)
		}
		out := Resample(samples, 10000, 20000)
		require.Len(t, out, 200)
		// Cubic interpolation reproduces a straight line exactly away
		// from the clamped edges.
		for i := 4; i < len(out)-8; i++ {
			assert.InDelta(t, float64(i)/2, out[i], 1e-9)
		}
	})

	t.Run("short_input_nearest_sample", func(t *testing.T) {
		out := Resample([]float64{1, 2}, 10, 20)
		require.Len(t, out, 4)
		assert.InDeltaSlice(t, []float64{1, 1, 2, 2}, out, 1e-12)
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Empty(t, Resample(nil, 44100, 22050))
	})
}

func TestDownmix(t *testing.T) {
	t.Run("stereo_average", func(t *testing.T) {
		interleaved := []float64{1, 0, 0.5, 0.5, -1, 1}
		out := downmix(interleaved, 2)
		assert.InDeltaSlice(t, []float64{0.5, 0.5, 0}, out, 1e-12)
	})

	t.Run("mono_passthrough", func(t *testing.T) {
		in := []float64{0.1, 0.2}
		assert.InDeltaSlice(t, in, downmix(in, 1), 0)
	})
}
