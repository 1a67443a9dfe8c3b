// Package audio provides the Signal model and file decoding for the
// detection pipeline. Recordings are decoded to a single mono channel of
// float64 samples; every pipeline stage that transforms a Signal returns a
// new one.
package audio

import (
	"math"
	"time"
)

// Signal is an ordered sequence of mono samples at a fixed sample rate.
// Signals are treated as immutable once produced; transformations allocate
// new sample slices.
type Signal struct {
	Samples []float64
	Rate    int
}

// NewSignal wraps samples at the given rate.
func NewSignal(samples []float64, rate int) *Signal {
	return &Signal{Samples: samples, Rate: rate}
}

// Len returns the number of samples.
func (s *Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the signal length as a time.Duration.
func (s *Signal) Duration() time.Duration {
	if s.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.Rate) * float64(time.Second))
}

// Seconds returns the signal length in seconds.
func (s *Signal) Seconds() float64 {
	if s.Rate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.Rate)
}

// Slice returns a new Signal over a copy of samples [from, to).
// Bounds are clamped to the valid range.
func (s *Signal) Slice(from, to int) *Signal {
	from = max(from, 0)
	to = min(to, len(s.Samples))
	if from >= to {
		return &Signal{Samples: []float64{}, Rate: s.Rate}
	}
	out := make([]float64, to-from)
	copy(out, s.Samples[from:to])
	return &Signal{Samples: out, Rate: s.Rate}
}

// Clone returns a deep copy of the signal.
func (s *Signal) Clone() *Signal {
	out := make([]float64, len(s.Samples))
	copy(out, s.Samples)
	return &Signal{Samples: out, Rate: s.Rate}
}

// PeakAmplitude returns the maximum absolute sample value.
func (s *Signal) PeakAmplitude() float64 {
	peak := 0.0
	for _, v := range s.Samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// Normalized returns a copy scaled so the peak absolute amplitude is 1.
// A silent signal is returned unchanged.
func (s *Signal) Normalized() *Signal {
	peak := s.PeakAmplitude()
	if peak == 0 {
		return s.Clone()
	}
	out := make([]float64, len(s.Samples))
	for i, v := range s.Samples {
		out[i] = v / peak
	}
	return &Signal{Samples: out, Rate: s.Rate}
}

// Resampled returns the signal converted to the target rate using cubic
// interpolation. Returns the receiver when the rate already matches.
func (s *Signal) Resampled(targetRate int) *Signal {
	if s.Rate == targetRate || s.Rate <= 0 || targetRate <= 0 {
		return s
	}
	return &Signal{
		Samples: Resample(s.Samples, s.Rate, targetRate),
		Rate:    targetRate,
	}
}
