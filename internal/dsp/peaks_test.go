package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindPeaks(t *testing.T) {
	tests := []struct {
		name    string
		x       []float64
		height  float64
		minDist int
		want    []int
	}{
		{
			name:   "single_peak",
			x:      []float64{0, 1, 3, 1, 0},
			height: 0,
			want:   []int{2},
		},
		{
			name:   "multiple_peaks",
			x:      []float64{0, 2, 0, 3, 0, 1, 0},
			height: 0,
			want:   []int{1, 3, 5},
		},
		{
			name:   "height_floor_filters",
			x:      []float64{0, 2, 0, 3, 0, 1, 0},
			height: 1.5,
			want:   []int{1, 3},
		},
		{
			name:   "plateau_midpoint",
			x:      []float64{0, 1, 5, 5, 5, 1, 0},
			height: 0,
			want:   []int{3},
		},
		{
			name:   "edges_are_not_peaks",
			x:      []float64{5, 1, 0, 1, 5},
			height: 0,
			want:   nil,
		},
		{
			name:   "monotonic_has_no_peaks",
			x:      []float64{0, 1, 2, 3, 4},
			height: 0,
			want:   nil,
		},
		{
			name:    "min_distance_keeps_taller",
			x:       []float64{0, 2, 0, 5, 0, 1, 0},
			height:  0,
			minDist: 3,
			want:    []int{3},
		},
		{
			name:    "min_distance_respects_spacing",
			x:       []float64{0, 4, 0, 0, 0, 0, 3, 0, 0, 0, 0, 5, 0},
			height:  0,
			minDist: 4,
			want:    []int{1, 6, 11},
		},
		{
			name: "empty_input",
			x:    nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPeaks(tt.x, tt.height, tt.minDist)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindPeaks_GreedyPruningOrder(t *testing.T) {
	// The middle peak is tallest, so it must win over both neighbors even
	// though each neighbor is processed within its own distance window.
	x := []float64{0, 3, 0, 9, 0, 4, 0}
	got := FindPeaks(x, 0, 10)
	assert.Equal(t, []int{3}, got)
}
