// Package conf holds the run configuration for startline. Settings are
// loaded from a YAML file through viper, with defaults that match the
// tuned values the detectors were calibrated with.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// LogConfig controls the optional JSON log file.
type LogConfig struct {
	Enabled    bool   // true to write a JSON log file in addition to stderr
	Path       string // log file path
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
	MaxAgeDays int    // days to retain rotated files
}

// MainSettings contains application-wide settings.
type MainSettings struct {
	Name string    // instance name included in file logs
	Log  LogConfig // log file settings
}

// DetectionSettings contains the knobs of a single-template detection pass.
type DetectionSettings struct {
	SampleRate           int     // common sample rate all audio is resampled to
	CorrelationThreshold float64 // peak floor as a fraction of the run's max correlation
	SpectralThreshold    float64 // minimum spectral similarity to accept a detection
	TemplateDuration     float64 // seconds of the template file to use
	SilenceThreshold     float64 // envelope fraction below which template edges are trimmed
	FreqHalfWidthHz      float64 // bandpass half-width around the dominant frequency
	MinFreqHz            float64 // absolute bandpass floor
	MaxFreqHz            float64 // absolute bandpass ceiling
	MinDistanceSeconds   float64 // minimum separation between correlation peaks
	DuplicateWindowMs    float64 // window for collapsing near-duplicate detections
	FilterOrder          int     // Butterworth bandpass order
	ParabolicRefinement  bool    // enable sub-sample peak refinement
	MaxDetections        int     // cap on reported detections, 0 for unlimited
	MinConfidence        float64 // drop detections below this final confidence
}

// RoleSettings overrides per-role thresholds in pattern mode.
type RoleSettings struct {
	CorrelationThreshold float64
	SpectralThreshold    float64
	TemplateDuration     float64
}

// PatternSettings controls COUNT→GO temporal pattern matching.
type PatternSettings struct {
	Count                RoleSettings
	Go                   RoleSettings
	MinGapSeconds        float64 // minimum COUNT→GO gap
	MaxGapSeconds        float64 // maximum COUNT→GO gap
	MinDistanceSeconds   float64 // minimum separation between same-role detections
	OverlapWindowSeconds float64 // window within which two patterns are the same event
	IdealGapSeconds      float64 // gap the overlap resolution prefers
}

// OutputSettings controls result writing.
type OutputSettings struct {
	Dir     string // output directory, empty for stdout only
	Format  string // "table", "csv" or "md"
	BaseURL string // optional media URL prefix for timestamp links
}

// Settings is the root of the configuration tree.
type Settings struct {
	Debug bool

	Main      MainSettings
	Detection DetectionSettings
	Pattern   PatternSettings
	Output    OutputSettings

	Input struct {
		Template      string // single-template mode reference clip
		CountTemplate string // pattern mode countdown clip
		GoTemplate    string // pattern mode start signal clip
		Path          string // target recording
	}
}

// Load reads the configuration file and returns the populated settings.
// A missing config file is not an error, defaults apply.
func Load(configPath string) (*Settings, error) {
	setDefaultConfig()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "startline"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// An explicitly named file reports plain fs.ErrNotExist; path
		// search reports ConfigFileNotFoundError. Both just mean
		// defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !asConfigFileNotFound(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func asConfigFileNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}
