package dsp

import "math"

// PearsonCorrelation computes the Pearson correlation coefficient between
// a and b over their common length. Degenerate inputs (fewer than two
// points, or zero variance) return 0, as does a NaN result.
func PearsonCorrelation(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n < 2 {
		return 0
	}

	var meanA, meanB float64
	for i := range n {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := range n {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}
	r := cov / math.Sqrt(varA*varB)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// MaxValue returns the maximum of x, or 0 for an empty slice.
func MaxValue(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
