package core

import "github.com/lintscore/lintscore/schema"

// Adaptive weight learning constants.
const (
	// learningRate scales how fast weights chase the error delta. The
	// update is a proportional-control step, not a full gradient method.
	learningRate = 0.01

	// weightFloor keeps every category recoverable: a weight that reached
	// zero could never grow back after normalization.
	weightFloor = 0.01
)

// ComputeWeightedError derives the batch's learning signal: the average
// severity-weighted issue load per file, per category. Every weighted
// category is present in the result even when no file had issues in it.
func ComputeWeightedError(summaries []schema.MetricSummary, fileCount int) schema.ErrorTable {
	errs := make(schema.ErrorTable, len(schema.WeightedCategories))

	for _, summary := range summaries {
		for _, issue := range summary.Issues {
			errs[summary.Category] += issue.Severity.Coefficient()
		}
	}

	divisor := float64(max(fileCount, 1))
	for category := range errs {
		errs[category] /= divisor
	}
	for _, category := range schema.WeightedCategories {
		if _, ok := errs[category]; !ok {
			errs[category] = 0.0
		}
	}
	return errs
}

// UpdateAdaptiveWeights produces the next run's weight table from the
// previous table and the two runs' weighted errors. Categories whose error
// grew gain weight (penalized harder next run); categories improving lose
// weight. The result is floored at weightFloor per category and normalized
// to sum to 1. Pure function; persistence happens elsewhere.
func UpdateAdaptiveWeights(prevWeights schema.WeightTable, prevE, currE schema.ErrorTable) schema.WeightTable {
	next := make(schema.WeightTable, len(prevWeights))
	for category, weight := range prevWeights {
		delta := currE[category] - prevE[category]
		next[category] = max(weight+learningRate*delta, weightFloor)
	}

	total := next.Sum()
	if total == 0 {
		return next
	}
	for category := range next {
		next[category] /= total
	}
	return next
}
