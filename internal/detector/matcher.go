package detector

import (
	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/dsp"
)

// matchTemplate normalizes target and template by their own peak
// amplitudes, computes the valid-mode cross-correlation, and picks peaks
// above the adaptive threshold with the configured minimum separation.
// It returns the candidates and the correlation series for refinement.
//
// The threshold is relative to the run's own maximum correlation, which
// keeps the matcher robust to recording loudness at the cost of always
// producing at least one candidate from any non-silent signal; downstream
// validation rejects the spurious ones.
func matchTemplate(target, template *audio.Signal, cfg *Config) ([]DetectionCandidate, []float64) {
	if target.PeakAmplitude() == 0 || template.PeakAmplitude() == 0 {
		return nil, nil
	}

	targetNorm := target.Normalized()
	templateNorm := template.Normalized()

	correlation := dsp.CrossCorrelateValid(targetNorm.Samples, templateNorm.Samples)
	if len(correlation) == 0 {
		// Target shorter than template: valid input, no detections.
		return nil, nil
	}

	maxCorr := dsp.MaxValue(correlation)
	if maxCorr <= 0 {
		return nil, correlation
	}

	minDist := int(cfg.MinDistanceSeconds * float64(target.Rate))
	peaks := dsp.FindPeaks(correlation, maxCorr*cfg.CorrelationThreshold, minDist)

	candidates := make([]DetectionCandidate, 0, len(peaks))
	for _, p := range peaks {
		candidates = append(candidates, DetectionCandidate{
			PeakIndex:   p,
			TimeMs:      float64(p) / float64(target.Rate) * 1000,
			Confidence:  correlation[p] / maxCorr,
			Correlation: correlation[p],
		})
	}
	return candidates, correlation
}
