package dsp

import (
	"fmt"
	"math"
	"math/cmplx"
)

// SOS is a single second-order filter section in direct form,
// b0 + b1 z^-1 + b2 z^-2 over 1 + a1 z^-1 + a2 z^-2.
type SOS struct {
	B [3]float64
	A [3]float64 // A[0] is always 1
}

// DesignBandpass designs a Butterworth bandpass filter of the given order
// with normalized corner frequencies loNorm and hiNorm (fractions of the
// Nyquist frequency, both in (0, 1)). The result is a cascade of
// second-order sections; the total filter order is twice the prototype
// order, as with scipy's butter(order, [lo, hi], btype="band").
func DesignBandpass(order int, loNorm, hiNorm float64) ([]SOS, error) {
	if order < 1 {
		return nil, fmt.Errorf("bandpass order must be at least 1, got %d", order)
	}
	if loNorm <= 0 || hiNorm >= 1 || loNorm >= hiNorm {
		return nil, fmt.Errorf("bandpass corners must satisfy 0 < lo < hi < 1, got [%g, %g]", loNorm, hiNorm)
	}

	// Bilinear transform uses a nominal fs of 2 so that normalized
	// frequencies map directly; pre-warp the corners.
	const fs = 2.0
	fs2 := 2 * fs
	w1 := 2 * fs * math.Tan(math.Pi*loNorm/2)
	w2 := 2 * fs * math.Tan(math.Pi*hiNorm/2)
	bw := w2 - w1
	w0 := math.Sqrt(w1 * w2)

	// Analog lowpass prototype poles on the unit circle, left half-plane.
	prototype := make([]complex128, 0, order)
	for k := 1; k <= order; k++ {
		theta := math.Pi * float64(2*k+order-1) / float64(2*order)
		prototype = append(prototype, cmplx.Exp(complex(0, theta)))
	}

	// Lowpass-to-bandpass transform: each prototype pole p becomes the two
	// roots of s^2 - p*bw*s + w0^2.
	analogPoles := make([]complex128, 0, 2*order)
	for _, p := range prototype {
		half := p * complex(bw/2, 0)
		disc := cmplx.Sqrt(half*half - complex(w0*w0, 0))
		analogPoles = append(analogPoles, half+disc, half-disc)
	}

	// Overall digital gain. The analog gain is bw^order with the bandpass
	// zeros (order of them) at s=0; the bilinear transform contributes
	// fs2^order from the zeros over the product of (fs2 - pole).
	denom := complex(1, 0)
	for _, p := range analogPoles {
		denom *= complex(fs2, 0) - p
	}
	gain := math.Pow(bw, float64(order)) * real(complex(math.Pow(fs2, float64(order)), 0)/denom)

	// Map analog poles into the z-plane. Poles come in conjugate pairs, so
	// only those generated from prototype poles with non-negative imaginary
	// part are kept for section building; each contributes its conjugate
	// implicitly. An odd prototype order adds one real prototype pole whose
	// two bandpass roots are handled as a pair of their own.
	// cmplx.Exp leaves a ~1e-16 imaginary residue on the real pole of odd
	// orders, so realness is decided with a tolerance.
	const realTol = 1e-9
	var sections []SOS
	for i, p := range prototype {
		s1 := analogPoles[2*i]
		s2 := analogPoles[2*i+1]
		switch {
		case imag(p) > realTol:
			sections = append(sections, sectionFromConjugatePole(bilinear(s1, fs2)))
			sections = append(sections, sectionFromConjugatePole(bilinear(s2, fs2)))
		case math.Abs(imag(p)) <= realTol:
			z1 := bilinear(s1, fs2)
			z2 := bilinear(s2, fs2)
			if math.Abs(imag(z1)) > realTol {
				// Complex pair from the real prototype pole.
				sections = append(sections, sectionFromConjugatePole(z1))
			} else {
				sections = append(sections, SOS{
					B: [3]float64{1, 0, -1},
					A: [3]float64{1, -(real(z1) + real(z2)), real(z1) * real(z2)},
				})
			}
		}
		// Poles with imag(p) < 0 are the conjugates already accounted for.
	}

	// Fold the overall gain into the first section.
	for i := range sections[0].B {
		sections[0].B[i] *= gain
	}
	return sections, nil
}

// bilinear maps an analog pole to the z-plane.
func bilinear(s complex128, fs2 float64) complex128 {
	return (complex(fs2, 0) + s) / (complex(fs2, 0) - s)
}

// sectionFromConjugatePole builds a bandpass section from a digital pole
// and its implicit conjugate: zeros at z = +1 and z = -1.
func sectionFromConjugatePole(z complex128) SOS {
	return SOS{
		B: [3]float64{1, 0, -1},
		A: [3]float64{1, -2 * real(z), real(z)*real(z) + imag(z)*imag(z)},
	}
}

// sosFilter runs the cascade over x in one direction using transposed
// direct form II, returning a new slice.
func sosFilter(sections []SOS, x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	for _, s := range sections {
		var z1, z2 float64
		for i, in := range y {
			out := s.B[0]*in + z1
			z1 = s.B[1]*in - s.A[1]*out + z2
			z2 = s.B[2]*in - s.A[2]*out
			y[i] = out
		}
	}
	return y
}

// FiltFilt applies the section cascade forward and backward for zero-phase
// filtering. The signal is extended at both ends with an odd reflection to
// reduce edge transients, matching the common filtfilt behavior.
func FiltFilt(sections []SOS, x []float64) []float64 {
	if len(x) == 0 || len(sections) == 0 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	padlen := 3 * (2*len(sections) + 1)
	if padlen >= len(x) {
		padlen = len(x) - 1
	}

	ext := make([]float64, 0, len(x)+2*padlen)
	for i := padlen; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	last := len(x) - 1
	for i := 1; i <= padlen; i++ {
		ext = append(ext, 2*x[last]-x[last-i])
	}

	y := sosFilter(sections, ext)
	reverse(y)
	y = sosFilter(sections, y)
	reverse(y)

	out := make([]float64, len(x))
	copy(out, y[padlen:padlen+len(x)])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// AllFinite reports whether every value is finite.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
