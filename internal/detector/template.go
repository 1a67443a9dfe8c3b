package detector

import (
	"log/slog"

	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/dsp"
	"github.com/raceaudio/startline/internal/errors"
)

// Fallback band used when the template spectrum shows no usable peak.
const (
	fallbackBandLowHz  = 800.0
	fallbackBandHighHz = 1300.0
	fallbackPrimaryHz  = 1000.0
)

// leadInSeconds is kept before the detected onset when trimming silence so
// the attack transient survives.
const leadInSeconds = 0.005

// FrequencyBand is an inclusive frequency range in Hz.
type FrequencyBand struct {
	Low  float64
	High float64
}

// Template is a cleaned reference clip together with its spectral profile.
// It is built once per run and reused across the whole target.
type Template struct {
	Signal        *audio.Signal
	DominantFreqs []float64 // up to three spectral peaks, ascending by magnitude
	PrimaryFreq   float64   // the strongest spectral peak
	Band          FrequencyBand
}

// PrepareTemplate cleans a raw template clip and derives its bandpass
// range: truncate to the configured duration, trim leading and trailing
// silence by Hilbert envelope, resample to the common rate, then locate
// the dominant spectral peaks.
func PrepareTemplate(raw *audio.Signal, cfg *Config, log *slog.Logger) (*Template, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, errors.Newf("template signal is empty").
			Component("detector").
			Category(errors.CategoryValidation).
			Build()
	}

	sig := raw
	maxSamples := int(cfg.TemplateDuration * float64(sig.Rate))
	if maxSamples > 0 && sig.Len() > maxSamples {
		sig = sig.Slice(0, maxSamples)
	}

	sig = trimSilence(sig, cfg.SilenceThreshold, log)
	sig = sig.Resampled(cfg.SampleRate)

	tmpl := &Template{Signal: sig}
	tmpl.analyzeFrequencies(cfg, log)
	return tmpl, nil
}

// trimSilence removes leading and trailing silence using a smoothed
// Hilbert envelope. When nothing rises above the threshold the input is
// returned unchanged; that is a degenerate template, not an error.
func trimSilence(sig *audio.Signal, threshold float64, log *slog.Logger) *audio.Signal {
	envelope := dsp.HilbertEnvelope(sig.Samples)
	window := max(len(envelope)/50, 1)
	if window > 1 {
		envelope = dsp.MovingAverage(envelope, window)
	}

	floor := dsp.MaxValue(envelope) * threshold
	first, last := -1, -1
	for i, v := range envelope {
		if v > floor {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		if log != nil {
			log.Warn("silence trim found no energy above threshold, keeping template as-is",
				"threshold", threshold)
		}
		return sig
	}

	buffer := int(leadInSeconds * float64(sig.Rate))
	first = max(first-buffer, 0)
	return sig.Slice(first, last+1)
}

// analyzeFrequencies finds the dominant spectral peaks of the cleaned
// template and derives the bandpass range. With no usable peak a fixed
// default band applies; this path never fails.
func (t *Template) analyzeFrequencies(cfg *Config, log *slog.Logger) {
	magnitude := dsp.MagnitudeSpectrum(t.Signal.Samples)
	half := len(magnitude) / 2

	peaks := dsp.FindPeaks(magnitude[:half], dsp.MaxValue(magnitude)*0.15, 5)

	if len(peaks) == 0 {
		t.DominantFreqs = []float64{fallbackPrimaryHz}
		t.PrimaryFreq = fallbackPrimaryHz
		t.Band = FrequencyBand{Low: fallbackBandLowHz, High: fallbackBandHighHz}
		if log != nil {
			log.Warn("no spectral peak found in template, using default band",
				"low_hz", t.Band.Low, "high_hz", t.Band.High)
		}
		return
	}

	// Up to the three largest peaks, ascending by magnitude so the primary
	// frequency is last.
	top := topPeaksByMagnitude(peaks, magnitude, 3)
	t.DominantFreqs = make([]float64, len(top))
	for i, p := range top {
		t.DominantFreqs[i] = dsp.BinFrequency(p, len(magnitude), t.Signal.Rate)
	}
	t.PrimaryFreq = t.DominantFreqs[len(t.DominantFreqs)-1]

	t.Band = FrequencyBand{
		Low:  max(cfg.MinFreqHz, t.PrimaryFreq-cfg.FreqHalfWidthHz),
		High: min(cfg.MaxFreqHz, t.PrimaryFreq+cfg.FreqHalfWidthHz),
	}
}

// topPeaksByMagnitude selects up to n peak indices with the largest
// magnitudes, returned in ascending magnitude order.
func topPeaksByMagnitude(peaks []int, magnitude []float64, n int) []int {
	sorted := make([]int, len(peaks))
	copy(sorted, peaks)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && magnitude[sorted[j]] < magnitude[sorted[j-1]]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}
