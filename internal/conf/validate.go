package conf

import (
	"github.com/raceaudio/startline/internal/errors"
)

// ValidateSettings checks that loaded settings are usable. It returns an
// error describing the first invalid value found.
func ValidateSettings(settings *Settings) error {
	if err := validateDetection(&settings.Detection); err != nil {
		return err
	}
	return validatePattern(&settings.Pattern)
}

func validateDetection(d *DetectionSettings) error {
	switch {
	case d.SampleRate <= 0:
		return validationError("detection.samplerate must be positive", "samplerate", d.SampleRate)
	case d.CorrelationThreshold <= 0 || d.CorrelationThreshold > 1:
		return validationError("detection.correlationthreshold must be in (0, 1]", "correlationthreshold", d.CorrelationThreshold)
	case d.SpectralThreshold < 0 || d.SpectralThreshold > 1:
		return validationError("detection.spectralthreshold must be in [0, 1]", "spectralthreshold", d.SpectralThreshold)
	case d.TemplateDuration <= 0:
		return validationError("detection.templateduration must be positive", "templateduration", d.TemplateDuration)
	case d.SilenceThreshold < 0 || d.SilenceThreshold >= 1:
		return validationError("detection.silencethreshold must be in [0, 1)", "silencethreshold", d.SilenceThreshold)
	case d.MinFreqHz <= 0 || d.MaxFreqHz <= d.MinFreqHz:
		return validationError("detection frequency bounds must satisfy 0 < min < max", "minfreqhz", d.MinFreqHz)
	case d.MinDistanceSeconds < 0:
		return validationError("detection.mindistanceseconds must not be negative", "mindistanceseconds", d.MinDistanceSeconds)
	case d.DuplicateWindowMs < 0:
		return validationError("detection.duplicatewindowms must not be negative", "duplicatewindowms", d.DuplicateWindowMs)
	case d.FilterOrder < 1:
		return validationError("detection.filterorder must be at least 1", "filterorder", d.FilterOrder)
	case d.MaxDetections < 0:
		return validationError("detection.maxdetections must not be negative", "maxdetections", d.MaxDetections)
	}
	return nil
}

func validatePattern(p *PatternSettings) error {
	switch {
	case p.MinGapSeconds <= 0:
		return validationError("pattern.mingapseconds must be positive", "mingapseconds", p.MinGapSeconds)
	case p.MaxGapSeconds <= p.MinGapSeconds:
		return validationError("pattern.maxgapseconds must exceed mingapseconds", "maxgapseconds", p.MaxGapSeconds)
	case p.OverlapWindowSeconds < 0:
		return validationError("pattern.overlapwindowseconds must not be negative", "overlapwindowseconds", p.OverlapWindowSeconds)
	case p.IdealGapSeconds <= 0:
		return validationError("pattern.idealgapseconds must be positive", "idealgapseconds", p.IdealGapSeconds)
	}
	return nil
}

func validationError(msg, key string, value any) error {
	return errors.Newf("%s", msg).
		Component("conf").
		Category(errors.CategoryConfiguration).
		Context(key, value).
		Build()
}
