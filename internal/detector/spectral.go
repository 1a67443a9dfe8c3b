package detector

import (
	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/dsp"
)

// validateSpectra compares the magnitude spectrum of each candidate's
// target segment against the template's and drops candidates whose
// spectral similarity does not exceed the threshold. This is what rejects
// segments that correlate in time but differ in timbre. Accepted
// detections get their confidence scaled by the similarity.
func validateSpectra(detections []RefinedDetection, target, template *audio.Signal, threshold float64) []ValidatedDetection {
	templateLen := template.Len()
	validated := make([]ValidatedDetection, 0, len(detections))

	for _, d := range detections {
		start := int(d.TimeMs / 1000 * float64(target.Rate))
		end := start + templateLen
		if start < 0 || start >= target.Len() || end > target.Len() {
			// Segment runs past the recording, cannot be validated.
			continue
		}

		segment := target.Samples[start:end]
		score, ok := spectralSimilarity(segment, template.Samples, threshold)
		if !ok {
			continue
		}

		v := ValidatedDetection{RefinedDetection: d, SpectralScore: score}
		v.Confidence *= score
		validated = append(validated, v)
	}
	return validated
}

// spectralSimilarity computes the Pearson correlation between the
// max-normalized magnitude spectra of segment and reference, truncated to
// equal length. It reports whether the similarity exceeds the threshold.
func spectralSimilarity(segment, reference []float64, threshold float64) (float64, bool) {
	if len(segment) < len(reference)/2 {
		return 0, false
	}

	n := min(len(segment), len(reference))
	segMag := dsp.MagnitudeSpectrum(segment[:n])
	refMag := dsp.MagnitudeSpectrum(reference[:n])

	segMax := dsp.MaxValue(segMag)
	refMax := dsp.MaxValue(refMag)
	if segMax <= 0 || refMax <= 0 {
		return 0, false
	}

	for i := range segMag {
		segMag[i] /= segMax
		refMag[i] /= refMax
	}

	similarity := dsp.PearsonCorrelation(segMag, refMag)
	if similarity < 0 {
		similarity = 0
	}
	return similarity, similarity > threshold
}
