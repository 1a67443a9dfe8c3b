package detector

// Config holds the knobs of one single-template detection pass. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	SampleRate           int     // common rate template and target are brought to
	CorrelationThreshold float64 // peak floor as a fraction of the run's max correlation
	SpectralThreshold    float64 // minimum spectral similarity for acceptance
	TemplateDuration     float64 // seconds of the template file to use
	SilenceThreshold     float64 // envelope fraction for template edge trimming
	FreqHalfWidthHz      float64 // bandpass half-width around the dominant frequency
	MinFreqHz            float64 // absolute bandpass floor in Hz
	MaxFreqHz            float64 // absolute bandpass ceiling in Hz
	MinDistanceSeconds   float64 // minimum separation between correlation peaks
	DuplicateWindowMs    float64 // collapse window for near-duplicate detections
	FilterOrder          int     // Butterworth bandpass order
	ParabolicRefinement  bool    // enable sub-sample peak refinement
	MaxDetections        int     // cap on results, 0 for unlimited
	MinConfidence        float64 // drop detections below this final confidence
}

// DefaultConfig returns the calibrated defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate:           22050,
		CorrelationThreshold: 0.8,
		SpectralThreshold:    0.6,
		TemplateDuration:     0.5,
		SilenceThreshold:     0.02,
		FreqHalfWidthHz:      120,
		MinFreqHz:            100,
		MaxFreqHz:            8000,
		MinDistanceSeconds:   0.5,
		DuplicateWindowMs:    100,
		FilterOrder:          6,
		ParabolicRefinement:  true,
		MaxDetections:        0,
		MinConfidence:        0,
	}
}
