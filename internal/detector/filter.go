package detector

import (
	"log/slog"

	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/dsp"
)

// Safe normalized band substituted when the requested band degenerates
// after Nyquist clamping.
const (
	safeBandLowNorm  = 0.05
	safeBandHighNorm = 0.3
)

// FilterResult is the outcome of best-effort bandpass filtering. Filtered
// is false when filtering was skipped or discarded and Signal is the
// original unfiltered input.
type FilterResult struct {
	Signal   *audio.Signal
	Filtered bool
}

// applyBandpass band-limits target to the given range with a zero-phase
// Butterworth filter. Filtering is an enhancement, never a dependency: on
// any design failure or non-finite output the original signal comes back
// unchanged.
func applyBandpass(target *audio.Signal, band FrequencyBand, order int, log *slog.Logger) FilterResult {
	nyquist := float64(target.Rate) / 2
	if nyquist <= 0 || target.Len() == 0 {
		return FilterResult{Signal: target}
	}

	lowNorm := clampNorm(band.Low / nyquist)
	highNorm := clampNorm(band.High / nyquist)
	if lowNorm >= highNorm {
		lowNorm = safeBandLowNorm
		highNorm = safeBandHighNorm
	}

	sections, err := dsp.DesignBandpass(order, lowNorm, highNorm)
	if err != nil {
		if log != nil {
			log.Warn("bandpass design failed, using unfiltered audio", "error", err)
		}
		return FilterResult{Signal: target}
	}

	filtered := dsp.FiltFilt(sections, target.Samples)
	if !dsp.AllFinite(filtered) {
		if log != nil {
			log.Warn("bandpass output not finite, using unfiltered audio",
				"low_hz", band.Low, "high_hz", band.High)
		}
		return FilterResult{Signal: target}
	}

	return FilterResult{
		Signal:   audio.NewSignal(filtered, target.Rate),
		Filtered: true,
	}
}

func clampNorm(v float64) float64 {
	return min(max(v, 0.001), 0.999)
}
