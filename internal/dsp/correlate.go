package dsp

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// directCorrelationLimit is the multiply count under which the direct loop
// beats the FFT path.
const directCorrelationLimit = 1 << 21

// CrossCorrelateValid computes the valid-mode cross-correlation of target
// against template: output[k] = sum_j target[k+j] * template[j], defined
// only where the template fully overlaps the target. The output length is
// len(target) - len(template) + 1; a target shorter than the template
// yields an empty result.
//
// Long inputs use the correlation theorem over an FFT of padded size, which
// is what makes scanning multi-hour recordings tractable.
func CrossCorrelateValid(target, template []float64) []float64 {
	n := len(target)
	m := len(template)
	if m == 0 || n < m {
		return nil
	}

	outLen := n - m + 1
	if outLen*m <= directCorrelationLimit {
		return correlateDirect(target, template, outLen)
	}
	return correlateFFT(target, template, outLen)
}

func correlateDirect(target, template []float64, outLen int) []float64 {
	out := make([]float64, outLen)
	for k := range out {
		sum := 0.0
		for j, t := range template {
			sum += target[k+j] * t
		}
		out[k] = sum
	}
	return out
}

func correlateFFT(target, template []float64, outLen int) []float64 {
	size := nextPow2(len(target) + len(template))

	paddedTarget := make([]float64, size)
	copy(paddedTarget, target)
	paddedTemplate := make([]float64, size)
	copy(paddedTemplate, template)

	fft := fourier.NewFFT(size)
	tc := fft.Coefficients(nil, paddedTarget)
	rc := fft.Coefficients(nil, paddedTemplate)

	// Correlation theorem: corr = IFFT(FFT(target) * conj(FFT(template))).
	prod := make([]complex128, len(tc))
	for i := range tc {
		tr, ti := real(tc[i]), imag(tc[i])
		rr, ri := real(rc[i]), imag(rc[i])
		prod[i] = complex(tr*rr+ti*ri, ti*rr-tr*ri)
	}

	full := fft.Sequence(nil, prod)

	out := make([]float64, outLen)
	scale := 1 / float64(size)
	for k := range out {
		out[k] = full[k] * scale
	}
	return out
}
