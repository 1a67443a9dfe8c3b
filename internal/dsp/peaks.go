package dsp

import "sort"

// FindPeaks locates local maxima of x with value >= height, enforcing a
// minimum index spacing of minDist between accepted peaks. Plateaus count
// as a single peak at their midpoint. When peaks compete within minDist the
// taller one wins, matching the semantics of scipy's find_peaks that the
// detector thresholds were tuned against. The returned indices are in
// ascending order.
func FindPeaks(x []float64, height float64, minDist int) []int {
	var candidates []int
	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// Possible peak or start of a plateau; scan to the plateau's end.
		j := i
		for j < len(x)-1 && x[j+1] == x[i] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[i] {
			mid := (i + j) / 2
			if x[mid] >= height {
				candidates = append(candidates, mid)
			}
		}
		i = j + 1
	}

	if minDist <= 1 || len(candidates) < 2 {
		return candidates
	}

	// Greedy pruning by descending height.
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return x[candidates[order[a]]] > x[candidates[order[b]]]
	})

	keep := make([]bool, len(candidates))
	removed := make([]bool, len(candidates))
	for _, ci := range order {
		if removed[ci] {
			continue
		}
		keep[ci] = true
		for cj := range candidates {
			if cj == ci || removed[cj] || keep[cj] {
				continue
			}
			d := candidates[ci] - candidates[cj]
			if d < 0 {
				d = -d
			}
			if d < minDist {
				removed[cj] = true
			}
		}
	}

	var out []int
	for ci, k := range keep {
		if k {
			out = append(out, candidates[ci])
		}
	}
	return out
}
