package detector

import "math"

// degenerateCurvature is the curvature magnitude below which the parabola
// fit is numerically meaningless and refinement is skipped.
const degenerateCurvature = 1e-10

// refinePeaks applies parabolic interpolation around each candidate's
// correlation peak for sub-sample timing. A peak at either end of the
// correlation series, or one with degenerate curvature, passes through
// unrefined. The interpolated offset never exceeds half a sample.
func refinePeaks(candidates []DetectionCandidate, correlation []float64, rate int, enabled bool) []RefinedDetection {
	refined := make([]RefinedDetection, 0, len(candidates))
	for _, c := range candidates {
		r := RefinedDetection{DetectionCandidate: c}
		if enabled && c.PeakIndex > 0 && c.PeakIndex < len(correlation)-1 {
			y1 := correlation[c.PeakIndex-1]
			y2 := correlation[c.PeakIndex]
			y3 := correlation[c.PeakIndex+1]
			a := (y1 - 2*y2 + y3) / 2
			b := (y3 - y1) / 2

			if math.Abs(a) > degenerateCurvature {
				offset := math.Max(-0.5, math.Min(0.5, -b/(2*a)))
				precise := float64(c.PeakIndex) + offset
				r.TimeMs = precise / float64(rate) * 1000
				r.Refined = true
			}
		}
		refined = append(refined, r)
	}
	return refined
}
