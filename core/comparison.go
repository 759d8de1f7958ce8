package core

import (
	"math"

	"github.com/lintscore/lintscore/schema"
)

// trendEpsilon is the dead zone below which a difference counts as noise.
const trendEpsilon = 0.001

// BuildBatchStats aggregates one run tree into per-category statistics.
// Every category appears in the result even when no file produced issues
// for it, so two runs are always compared over the same key set.
func BuildBatchStats(tree *schema.RunTree) schema.BatchStats {
	stats := schema.BatchStats{
		FileCount: len(tree.Files),
		Metrics:   make(map[schema.Category]schema.CategoryStats, len(schema.AllCategories)),
	}

	for _, category := range schema.AllCategories {
		cs := schema.CategoryStats{
			SeverityCounts: map[schema.Severity]int{
				schema.LowSeverity:    0,
				schema.MediumSeverity: 0,
				schema.HighSeverity:   0,
			},
		}
		for _, file := range tree.Files {
			for _, summary := range file.Summaries {
				if summary.Category != category {
					continue
				}
				cs.TotalIssues += summary.IssueCount
				cs.TotalScore += summary.Score
				if summary.IssueCount > 0 {
					cs.FilesWithIssues++
				}
				for _, issue := range summary.Issues {
					cs.SeverityCounts[issue.Severity]++
				}
			}
		}
		if stats.FileCount > 0 {
			n := float64(stats.FileCount)
			cs.AvgIssuesPerFile = float64(cs.TotalIssues) / n
			cs.AvgScore = cs.TotalScore / n
			cs.FilesWithIssuePct = float64(cs.FilesWithIssues) / n * 100.0
		}
		stats.Metrics[category] = cs
	}
	return stats
}

// CompareRuns compares two historical runs category by category and
// summarizes the overall movement with a weighted score. The weighted
// score intentionally uses the static default weights on both sides so
// the two runs are measured with the same yardstick regardless of what
// the adaptive tables looked like at the time.
func CompareRuns(tree1, tree2 *schema.RunTree) schema.BatchComparison {
	stats1 := BuildBatchStats(tree1)
	stats2 := BuildBatchStats(tree2)

	cmp := schema.BatchComparison{
		Batch1: schema.BatchInfo{
			ID:        tree1.Analysis.ID,
			FileCount: stats1.FileCount,
			CreatedAt: tree1.Analysis.CreatedAt,
		},
		Batch2: schema.BatchInfo{
			ID:        tree2.Analysis.ID,
			FileCount: stats2.FileCount,
			CreatedAt: tree2.Analysis.CreatedAt,
		},
		Metrics: make(map[schema.Category]schema.CategoryComparison, len(schema.AllCategories)),
	}

	for _, category := range schema.AllCategories {
		cs1 := stats1.Metrics[category]
		cs2 := stats2.Metrics[category]
		cmp.Metrics[category] = schema.CategoryComparison{
			AvgIssuesPerFile:  compareValues(cs1.AvgIssuesPerFile, cs2.AvgIssuesPerFile, lowerIsBetter),
			AvgScore:          compareValues(cs1.AvgScore, cs2.AvgScore, higherIsBetter),
			FilesWithIssuePct: compareValues(cs1.FilesWithIssuePct, cs2.FilesWithIssuePct, lowerIsBetter),
			Severity: schema.SeverityComparison{
				Batch1: cs1.SeverityCounts,
				Batch2: cs2.SeverityCounts,
			},
		}
	}

	score1 := weightedBatchScore(stats1)
	score2 := weightedBatchScore(stats2)
	diff := score2 - score1
	cmp.Overall = schema.OverallSummary{
		Batch1WeightedScore: score1,
		Batch2WeightedScore: score2,
		WeightedDifference:  diff,
		Trend:               classifyTrend(diff, higherIsBetter),
	}
	return cmp
}

// weightedBatchScore folds a run's average category scores into a single
// number using the static default weights.
func weightedBatchScore(stats schema.BatchStats) float64 {
	var total float64
	for category, weight := range schema.DefaultWeights {
		total += weight * stats.Metrics[category].AvgScore
	}
	return total
}

type trendDirection int

const (
	higherIsBetter trendDirection = iota
	lowerIsBetter
)

// compareValues builds a ValueComparison for one scalar metric.
func compareValues(v1, v2 float64, dir trendDirection) schema.ValueComparison {
	diff := v2 - v1
	return schema.ValueComparison{
		Batch1:     v1,
		Batch2:     v2,
		Difference: diff,
		Trend:      classifyTrend(diff, dir),
	}
}

// classifyTrend maps a difference to a trend, treating anything inside
// the epsilon dead zone as unchanged.
func classifyTrend(diff float64, dir trendDirection) schema.Trend {
	if math.Abs(diff) < trendEpsilon {
		return schema.TrendUnchanged
	}
	improved := diff > 0
	if dir == lowerIsBetter {
		improved = !improved
	}
	if improved {
		return schema.TrendImproved
	}
	return schema.TrendWorsened
}
