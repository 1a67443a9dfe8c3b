package detector

// DetectionCandidate is a correlation peak before refinement. Confidence is
// the peak's correlation value relative to the run's maximum correlation,
// so it measures significance within the run, not absolute match quality.
type DetectionCandidate struct {
	PeakIndex   int     // index into the correlation series
	TimeMs      float64 // offset of the match in the target, milliseconds
	Confidence  float64 // correlation / max correlation, in [0, 1]
	Correlation float64 // raw correlation value at the peak
}

// RefinedDetection is a DetectionCandidate whose time may have been
// adjusted by parabolic interpolation. Refined is false when the peak sat
// at a boundary of the correlation series or the fitted curvature was
// degenerate.
type RefinedDetection struct {
	DetectionCandidate
	Refined bool
}

// ValidatedDetection is a RefinedDetection that passed spectral
// validation. Confidence has been multiplied by SpectralScore.
type ValidatedDetection struct {
	RefinedDetection
	SpectralScore float64
}

// Detection is the output contract of a single-template run.
type Detection struct {
	TimeMs     float64 // event offset in milliseconds
	Confidence float64 // final confidence in [0, 1]
	Refined    bool    // whether sub-sample refinement was applied
}
