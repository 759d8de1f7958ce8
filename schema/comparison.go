package schema

import "time"

// CategoryStats aggregates one category across all files of one run.
type CategoryStats struct {
	TotalIssues     int              `json:"total_issues"`
	TotalScore      float64          `json:"total_score"`
	FilesWithIssues int              `json:"files_with_issues"`
	SeverityCounts  map[Severity]int `json:"severity_counts"`

	AvgIssuesPerFile  float64 `json:"avg_issues_per_file"`
	AvgScore          float64 `json:"avg_score"`
	FilesWithIssuePct float64 `json:"files_with_issues_percentage"`
}

// BatchStats holds the per-category aggregates for one run.
type BatchStats struct {
	FileCount int                        `json:"file_count"`
	Metrics   map[Category]CategoryStats `json:"metrics"`
}

// ValueComparison compares one scalar metric between two runs.
type ValueComparison struct {
	Batch1     float64 `json:"batch1"`
	Batch2     float64 `json:"batch2"`
	Difference float64 `json:"difference"`
	Trend      Trend   `json:"trend,omitempty"`
}

// SeverityComparison places the two runs' severity histograms side by side.
type SeverityComparison struct {
	Batch1 map[Severity]int `json:"batch1"`
	Batch2 map[Severity]int `json:"batch2"`
}

// CategoryComparison compares one category between two runs.
type CategoryComparison struct {
	AvgIssuesPerFile  ValueComparison    `json:"avg_issues_per_file"`
	AvgScore          ValueComparison    `json:"avg_score"`
	FilesWithIssuePct ValueComparison    `json:"files_with_issues_percentage"`
	Severity          SeverityComparison `json:"severity_distribution"`
}

// BatchInfo identifies one side of a comparison.
type BatchInfo struct {
	ID        string    `json:"id"`
	FileCount int       `json:"file_count"`
	CreatedAt time.Time `json:"created_at"`
}

// OverallSummary compares the weighted total scores of two runs.
type OverallSummary struct {
	Batch1WeightedScore float64 `json:"batch1_weighted_score"`
	Batch2WeightedScore float64 `json:"batch2_weighted_score"`
	WeightedDifference  float64 `json:"weighted_difference"`
	Trend               Trend   `json:"trend"`
}

// BatchComparison is the full result of comparing two historical runs.
type BatchComparison struct {
	Batch1  BatchInfo                       `json:"batch1"`
	Batch2  BatchInfo                       `json:"batch2"`
	Metrics map[Category]CategoryComparison `json:"metrics_comparison"`
	Overall OverallSummary                  `json:"overall_summary"`
}
