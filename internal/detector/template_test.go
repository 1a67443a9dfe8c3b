package detector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceaudio/startline/internal/audio"
)

// tone generates a sine burst for test fixtures.
func tone(freqHz float64, seconds float64, rate int, amp float64) *audio.Signal {
	n := int(seconds * float64(rate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amp * math.Sin(2*math.Pi*freqHz*float64(i)/float64(rate))
	}
	return audio.NewSignal(samples, rate)
}

func TestPrepareTemplate(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("empty_template_is_an_error", func(t *testing.T) {
		_, err := PrepareTemplate(audio.NewSignal(nil, 22050), &cfg, nil)
		assert.Error(t, err)

		_, err = PrepareTemplate(nil, &cfg, nil)
		assert.Error(t, err)
	})

	t.Run("pure_tone_band_brackets_its_frequency", func(t *testing.T) {
		tmpl, err := PrepareTemplate(tone(1000, 0.3, 22050, 1), &cfg, nil)
		require.NoError(t, err)

		assert.InDelta(t, 1000, tmpl.PrimaryFreq, 10)
		assert.InDelta(t, 1000-cfg.FreqHalfWidthHz, tmpl.Band.Low, 10)
		assert.InDelta(t, 1000+cfg.FreqHalfWidthHz, tmpl.Band.High, 10)
		assert.NotEmpty(t, tmpl.DominantFreqs)
	})

	t.Run("truncates_to_configured_duration", func(t *testing.T) {
		tmpl, err := PrepareTemplate(tone(1000, 2.0, 22050, 1), &cfg, nil)
		require.NoError(t, err)

		maxSamples := int(cfg.TemplateDuration * 22050)
		assert.LessOrEqual(t, tmpl.Signal.Len(), maxSamples)
	})

	t.Run("band_respects_absolute_limits", func(t *testing.T) {
		lowCfg := cfg
		lowCfg.MinFreqHz = 950
		tmpl, err := PrepareTemplate(tone(1000, 0.3, 22050, 1), &lowCfg, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tmpl.Band.Low, 950.0)
	})

	t.Run("flat_spectrum_falls_back_to_default_band", func(t *testing.T) {
		samples := make([]float64, 4096)
		for i := range samples {
			samples[i] = 0.5
		}
		tmpl, err := PrepareTemplate(audio.NewSignal(samples, 22050), &cfg, nil)
		require.NoError(t, err)

		assert.InDelta(t, fallbackPrimaryHz, tmpl.PrimaryFreq, 1e-9)
		assert.InDelta(t, fallbackBandLowHz, tmpl.Band.Low, 1e-9)
		assert.InDelta(t, fallbackBandHighHz, tmpl.Band.High, 1e-9)
	})
}

func TestTrimSilence(t *testing.T) {
	const rate = 10000

	t.Run("removes_surrounding_silence", func(t *testing.T) {
		// 0.2s silence, 0.1s tone, 0.2s silence.
		lead := make([]float64, 2000)
		burst := tone(1000, 0.1, rate, 1).Samples
		tail := make([]float64, 2000)

		samples := append(append(append([]float64{}, lead...), burst...), tail...)
		sig := audio.NewSignal(samples, rate)

		trimmed := trimSilence(sig, 0.02, nil)
		assert.Less(t, trimmed.Len(), sig.Len())
		// The burst itself survives, padded by the lead-in and envelope
		// smoothing.
		assert.GreaterOrEqual(t, trimmed.Len(), len(burst))
		assert.Less(t, trimmed.Len(), 2*len(burst))
		assert.InDelta(t, 1.0, trimmed.PeakAmplitude(), 0.05)
	})

	t.Run("all_silence_is_kept_unchanged", func(t *testing.T) {
		sig := audio.NewSignal(make([]float64, 1000), rate)
		trimmed := trimSilence(sig, 0.02, nil)
		assert.Equal(t, sig.Len(), trimmed.Len())
	})

	t.Run("tone_without_silence_is_kept", func(t *testing.T) {
		sig := tone(500, 0.2, rate, 0.8)
		trimmed := trimSilence(sig, 0.02, nil)
		assert.Equal(t, sig.Len(), trimmed.Len())
	})
}

func TestTopPeaksByMagnitude(t *testing.T) {
	magnitude := []float64{0, 5, 0, 9, 0, 2, 0, 7, 0}
	peaks := []int{1, 3, 5, 7}

	t.Run("keeps_largest_ascending", func(t *testing.T) {
		got := topPeaksByMagnitude(peaks, magnitude, 3)
		assert.Equal(t, []int{1, 7, 3}, got)
	})

	t.Run("fewer_peaks_than_n", func(t *testing.T) {
		got := topPeaksByMagnitude([]int{5, 3}, magnitude, 3)
		assert.Equal(t, []int{5, 3}, got)
	})
}
