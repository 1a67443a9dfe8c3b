// Package detector implements single-template audio event detection: a
// cleaned reference clip is cross-correlated against a bandpass-filtered
// recording, correlation peaks are refined to sub-sample precision,
// validated spectrally, and deduplicated into a time-ordered detection
// list.
//
// A Detector captures its template and configuration at construction and
// never mutates them; every pipeline stage consumes its input list and
// produces a new one, so reprocessing the same recording is deterministic.
package detector

import (
	"log/slog"
	"sort"

	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/errors"
	"github.com/raceaudio/startline/internal/logging"
)

// Detector runs the single-template pipeline against target recordings.
type Detector struct {
	cfg      Config
	template *Template
	log      *slog.Logger
}

// New builds a Detector around an already-prepared template.
func New(cfg Config, template *Template) *Detector {
	return &Detector{
		cfg:      cfg,
		template: template,
		log:      logging.ForService("detector"),
	}
}

// NewFromFile loads and prepares the template clip at templatePath.
// A missing or empty template file is a hard error.
func NewFromFile(templatePath string, cfg Config) (*Detector, error) {
	log := logging.ForService("detector")

	raw, err := audio.ReadFile(templatePath, 0)
	if err != nil {
		return nil, err
	}

	template, err := PrepareTemplate(raw, &cfg, log)
	if err != nil {
		return nil, errors.New(err).
			Component("detector").
			Category(errors.CategoryValidation).
			FileContext(templatePath).
			Build()
	}

	log.Debug("template prepared",
		"path", templatePath,
		"samples", template.Signal.Len(),
		"primary_hz", template.PrimaryFreq,
		"band_low_hz", template.Band.Low,
		"band_high_hz", template.Band.High)

	return New(cfg, template), nil
}

// Template returns the prepared template of this detector.
func (d *Detector) Template() *Template {
	return d.template
}

// Run scans the target recording and returns detections in ascending time
// order. The target must be at the detector's sample rate; use RunFile to
// decode and resample from disk. An empty result is a valid outcome, not
// an error: a target shorter than the template, no peaks above threshold,
// or nothing surviving validation all yield an empty list.
func (d *Detector) Run(target *audio.Signal) ([]Detection, error) {
	if d.template == nil || d.template.Signal.Len() == 0 {
		return nil, errors.Newf("detector has no usable template").
			Component("detector").
			Category(errors.CategoryValidation).
			Build()
	}
	if target == nil || target.Len() == 0 {
		return nil, nil
	}

	filtered := applyBandpass(target, d.template.Band, d.cfg.FilterOrder, d.log)

	candidates, correlation := matchTemplate(filtered.Signal, d.template.Signal, &d.cfg)
	d.log.Debug("correlation peaks found",
		"count", len(candidates),
		"filtered", filtered.Filtered)
	if len(candidates) == 0 {
		return nil, nil
	}

	refined := refinePeaks(candidates, correlation, target.Rate, d.cfg.ParabolicRefinement)
	validated := validateSpectra(refined, filtered.Signal, d.template.Signal, d.cfg.SpectralThreshold)
	deduped := dedupe(validated, d.cfg.DuplicateWindowMs)

	results := make([]Detection, 0, len(deduped))
	for _, v := range deduped {
		if d.cfg.MinConfidence > 0 && v.Confidence < d.cfg.MinConfidence {
			continue
		}
		results = append(results, Detection{
			TimeMs:     v.TimeMs,
			Confidence: v.Confidence,
			Refined:    v.Refined,
		})
	}

	// The cap keeps the highest-confidence detections, not the earliest.
	if d.cfg.MaxDetections > 0 && len(results) > d.cfg.MaxDetections {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Confidence > results[j].Confidence
		})
		results = results[:d.cfg.MaxDetections]
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TimeMs < results[j].TimeMs
	})

	d.log.Debug("detection run complete",
		"candidates", len(candidates),
		"validated", len(validated),
		"final", len(results))
	return results, nil
}

// RunFile decodes the recording at path, resamples it to the detector's
// rate, and runs detection on it.
func (d *Detector) RunFile(path string) ([]Detection, error) {
	target, err := audio.ReadFile(path, d.cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	return d.Run(target)
}
