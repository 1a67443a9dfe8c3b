package dsp

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// HilbertEnvelope computes the amplitude envelope of x as the magnitude of
// its analytic signal. The analytic signal is formed in the frequency
// domain by zeroing negative frequencies and doubling positive ones.
func HilbertEnvelope(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{abs64(x[0])}
	}

	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, seq)

	// Analytic signal weights: DC and Nyquist stay, positive frequencies
	// double, negative frequencies vanish.
	half := n / 2
	for k := 1; k < half; k++ {
		coeff[k] *= 2
	}
	if n%2 != 0 {
		coeff[half] *= 2
	}
	for k := half + 1; k < n; k++ {
		coeff[k] = 0
	}

	analytic := fft.Sequence(nil, coeff)

	env := make([]float64, n)
	scale := float64(n)
	for i, c := range analytic {
		env[i] = cmplx.Abs(c) / scale
	}
	return env
}

// MovingAverage smooths x with a centered moving average of the given
// window, producing a same-length result. Windows of one or less return a
// copy of the input. Edges average over the available neighborhood only.
func MovingAverage(x []float64, window int) []float64 {
	out := make([]float64, len(x))
	if window <= 1 {
		copy(out, x)
		return out
	}

	halfLeft := window / 2
	halfRight := window - halfLeft - 1
	for i := range x {
		lo := max(i-halfLeft, 0)
		hi := min(i+halfRight, len(x)-1)
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += x[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
