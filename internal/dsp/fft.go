// Package dsp implements the numerical primitives behind the detection
// pipeline: spectra, envelopes, Butterworth filtering, cross-correlation
// and peak picking. All routines are pure functions over float64 slices.
package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MagnitudeSpectrum computes the full-length magnitude spectrum |FFT(x)|.
// The output has the same length as the input; bins above len/2 mirror the
// lower half, matching a complex FFT of a real signal.
func MagnitudeSpectrum(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, x)

	mag := make([]float64, n)
	for k, c := range coeff {
		mag[k] = cmplx.Abs(c)
	}
	// Real input: upper half mirrors the conjugate-symmetric lower half.
	for k := len(coeff); k < n; k++ {
		mag[k] = mag[n-k]
	}
	return mag
}

// BinFrequency returns the center frequency in Hz of FFT bin k for an
// n-point transform at the given sample rate.
func BinFrequency(k, n, sampleRate int) float64 {
	if n == 0 {
		return 0
	}
	return float64(k) * float64(sampleRate) / float64(n)
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
