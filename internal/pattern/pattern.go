// Package pattern composes two independent single-template detection
// passes, a countdown signal and a start signal, into validated COUNT→GO
// sequences. Pairing is all-pairs within a gap window, then overlapping
// candidates collapse to the one whose gap is closest to the typical race
// timing.
package pattern

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/raceaudio/startline/internal/audio"
	"github.com/raceaudio/startline/internal/detector"
	"github.com/raceaudio/startline/internal/logging"
)

// Role overrides the detection thresholds for one of the two passes. The
// countdown clip is long and noisy while the go signal is short and clean,
// so they get different sensitivities.
type Role struct {
	CorrelationThreshold float64
	SpectralThreshold    float64
	TemplateDuration     float64
}

// Config controls pattern matching and both detection passes.
type Config struct {
	Base  detector.Config // base settings for both passes
	Count Role            // countdown pass overrides
	Go    Role            // start signal pass overrides

	MinGapSeconds        float64 // minimum COUNT→GO gap
	MaxGapSeconds        float64 // maximum COUNT→GO gap
	MinDistanceSeconds   float64 // minimum separation between same-role detections
	OverlapWindowSeconds float64 // window within which two patterns are the same event
	IdealGapSeconds      float64 // preferred gap for overlap resolution
}

// DefaultConfig returns the calibrated pattern settings.
func DefaultConfig() Config {
	return Config{
		Base: detector.DefaultConfig(),
		Count: Role{
			CorrelationThreshold: 0.32,
			SpectralThreshold:    0.12,
			TemplateDuration:     2.5,
		},
		Go: Role{
			CorrelationThreshold: 0.32,
			SpectralThreshold:    0.18,
			TemplateDuration:     0.5,
		},
		MinGapSeconds:        2.0,
		MaxGapSeconds:        10.0,
		MinDistanceSeconds:   3.0,
		OverlapWindowSeconds: 15.0,
		IdealGapSeconds:      4.5,
	}
}

// detectorConfig derives the detector configuration for one role.
func (c *Config) detectorConfig(role Role) detector.Config {
	cfg := c.Base
	cfg.CorrelationThreshold = role.CorrelationThreshold
	cfg.SpectralThreshold = role.SpectralThreshold
	cfg.TemplateDuration = role.TemplateDuration
	cfg.MinDistanceSeconds = c.MinDistanceSeconds
	return cfg
}

// Pattern is one validated COUNT→GO sequence.
type Pattern struct {
	SequenceNumber int     // 1-based position in time order
	CountTimeMs    float64 // countdown onset, milliseconds
	GoTimeMs       float64 // start signal onset, milliseconds
	GapSeconds     float64 // GoTimeMs - CountTimeMs in seconds
}

// Matcher runs the dual-template pattern pipeline.
type Matcher struct {
	cfg Config
	log *slog.Logger
}

// NewMatcher creates a Matcher with the given configuration.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg, log: logging.ForService("pattern")}
}

// RunFiles prepares both templates, decodes the target recording once, and
// returns the validated patterns.
func (m *Matcher) RunFiles(ctx context.Context, countTemplate, goTemplate, targetPath string) ([]Pattern, error) {
	countDet, err := detector.NewFromFile(countTemplate, m.cfg.detectorConfig(m.cfg.Count))
	if err != nil {
		return nil, err
	}
	goDet, err := detector.NewFromFile(goTemplate, m.cfg.detectorConfig(m.cfg.Go))
	if err != nil {
		return nil, err
	}

	target, err := audio.ReadFile(targetPath, m.cfg.Base.SampleRate)
	if err != nil {
		return nil, err
	}

	return m.Run(ctx, countDet, goDet, target)
}

// Run executes the two detection passes against the same target and
// composes the results. The passes share no state, so they run in
// parallel.
func (m *Matcher) Run(ctx context.Context, countDet, goDet *detector.Detector, target *audio.Signal) ([]Pattern, error) {
	var countDetections, goDetections []detector.Detection

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countDetections, err = countDet.Run(target)
		return err
	})
	g.Go(func() error {
		var err error
		goDetections, err = goDet.Run(target)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.log.Debug("detection passes complete",
		"count_candidates", len(countDetections),
		"go_candidates", len(goDetections))

	patterns := m.composePatterns(countDetections, goDetections)
	m.log.Info("pattern matching complete", "patterns", len(patterns))
	return patterns, nil
}

// composePatterns pairs COUNT and GO detections within the gap window and
// resolves overlapping candidates.
func (m *Matcher) composePatterns(countDetections, goDetections []detector.Detection) []Pattern {
	minGapMs := m.cfg.MinGapSeconds * 1000
	maxGapMs := m.cfg.MaxGapSeconds * 1000

	var candidates []Pattern
	for _, c := range countDetections {
		for _, g := range goDetections {
			gapMs := g.TimeMs - c.TimeMs
			if gapMs < minGapMs || gapMs > maxGapMs {
				continue
			}
			candidates = append(candidates, Pattern{
				CountTimeMs: c.TimeMs,
				GoTimeMs:    g.TimeMs,
				GapSeconds:  gapMs / 1000,
			})
		}
	}

	if len(candidates) > 1 {
		candidates = m.resolveOverlaps(candidates)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CountTimeMs < candidates[j].CountTimeMs
	})
	for i := range candidates {
		candidates[i].SequenceNumber = i + 1
	}
	return candidates
}

// resolveOverlaps drops every candidate that is dominated by another
// candidate within the overlap window, where dominance means a gap
// strictly closer to the ideal gap. Candidates with equal closeness do not
// dominate each other.
func (m *Matcher) resolveOverlaps(candidates []Pattern) []Pattern {
	windowMs := m.cfg.OverlapWindowSeconds * 1000

	var kept []Pattern
	for i, p := range candidates {
		dominated := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if math.Abs(p.CountTimeMs-other.CountTimeMs) >= windowMs {
				continue
			}
			pScore := math.Abs(p.GapSeconds - m.cfg.IdealGapSeconds)
			otherScore := math.Abs(other.GapSeconds - m.cfg.IdealGapSeconds)
			if pScore > otherScore {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}
	return kept
}
