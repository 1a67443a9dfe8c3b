package detector

import (
	"math"
	"sort"
)

// dedupe collapses detections within windowMs of an already-accepted
// detection, keeping the highest-confidence representative of each
// cluster. The result is sorted by ascending time. Running dedupe on its
// own output is a no-op.
func dedupe(detections []ValidatedDetection, windowMs float64) []ValidatedDetection {
	if len(detections) == 0 {
		return nil
	}

	byConfidence := make([]ValidatedDetection, len(detections))
	copy(byConfidence, detections)
	sort.SliceStable(byConfidence, func(i, j int) bool {
		return byConfidence[i].Confidence > byConfidence[j].Confidence
	})

	kept := make([]ValidatedDetection, 0, len(byConfidence))
	for _, d := range byConfidence {
		duplicate := false
		for _, existing := range kept {
			if math.Abs(d.TimeMs-existing.TimeMs) < windowMs {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, d)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].TimeMs < kept[j].TimeMs
	})
	return kept
}
