package audio

// Resample converts samples from originalRate to targetRate using cubic
// interpolation. The input slice is not modified.
func Resample(samples []float64, originalRate, targetRate int) []float64 {
	if originalRate == targetRate || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	ratio := float64(targetRate) / float64(originalRate)
	newLength := int(float64(len(samples)) * ratio)
	if newLength == 0 {
		newLength = 1
	}
	resampled := make([]float64, newLength)

	if len(samples) < 4 {
		// Too short for cubic interpolation, fall back to nearest sample.
		for i := range resampled {
			idx := min(int(float64(i)/ratio), len(samples)-1)
			resampled[i] = samples[idx]
		}
		return resampled
	}

	lastIndex := len(samples) - 3

	for i := range newLength {
		origPos := float64(i) / ratio
		index := int(origPos)

		// Clamp index to avoid out-of-bounds access
		if index < 1 {
			index = 1
		} else if index > lastIndex {
			index = lastIndex
		}

		frac := origPos - float64(index)

		y0, y1, y2, y3 := samples[index-1], samples[index], samples[index+1], samples[index+2]
		mu2 := frac * frac
		a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
		a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
		a2 := -0.5*y0 + 0.5*y2
		a3 := y1

		resampled[i] = a0*frac*mu2 + a1*mu2 + a2*frac + a3
	}

	return resampled
}
