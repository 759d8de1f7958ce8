package core

import "github.com/lintscore/lintscore/schema"

// CalculateFileScore combines a file's category scores into one file-level
// score. Every weighted category starts at a flawless 100 and is overwritten
// where a summary exists; the documentation summary is instead treated as a
// multiplicative ratio over the weighted base, so documentation quality
// modulates the score rather than adding to it. Weights are whatever table
// is in effect for the run; they need not sum to 1 here.
func CalculateFileScore(summaries []schema.MetricSummary, weights schema.WeightTable) float64 {
	categoryScores := make(map[schema.Category]float64, len(weights))
	for category := range weights {
		categoryScores[category] = perfectScore
	}

	ratio := docPerfect
	for _, summary := range summaries {
		if _, weighted := categoryScores[summary.Category]; weighted {
			categoryScores[summary.Category] = summary.Score
		} else if summary.Category == schema.Documentation {
			ratio = summary.Score
		}
	}

	var base float64
	for category, weight := range weights {
		base += weight * categoryScores[category]
	}

	return base * ratio
}
