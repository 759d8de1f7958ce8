// Package parquet provides data structures and functions for exporting
// analysis run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/lintscore/lintscore/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID string `parquet:"analysis_id,snappy"`

	// CreatedAt is when the run started (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// FileCount is the number of files submitted in this run
	FileCount int32 `parquet:"file_count,snappy"`

	// Status is the terminal run status
	Status string `parquet:"status,snappy"`
}

// FileScore represents one file's score in an analysis run together with
// its per-category breakdown.
type FileScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID string `parquet:"analysis_id,snappy"`

	// FilePath is the path of the analyzed file
	FilePath string `parquet:"file_path,snappy"`

	// TotalScore is the weighted overall file score
	TotalScore float64 `parquet:"total_score,snappy"`

	// IssueCount is the number of normalized issues across all categories
	IssueCount int32 `parquet:"issue_count,snappy"`

	// ScoreStyle is the category score for code style
	ScoreStyle float64 `parquet:"score_code_style,snappy"`

	// ScoreSmell is the category score for code smells
	ScoreSmell float64 `parquet:"score_code_smell,snappy"`

	// ScoreComplexity is the category score for cyclomatic complexity
	ScoreComplexity float64 `parquet:"score_complexity,snappy"`

	// ScoreSecurity is the category score for security vulnerabilities
	ScoreSecurity float64 `parquet:"score_security_vulnerability,snappy"`

	// ScorePotentialError is the category score for potential errors
	ScorePotentialError float64 `parquet:"score_potential_error,snappy"`

	// DocumentationRatio is the documentation multiplier (nullable when
	// no documentation summary exists)
	DocumentationRatio *float64 `parquet:"documentation_ratio,optional,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the AnalysisRun struct tags
	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileScoresParquet writes a slice of FileScore structs to a Parquet file.
func WriteFileScoresParquet(data []FileScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileScore struct tags
	writer := parquet.NewGenericWriter[FileScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRuns converts schema.AnalysisRun records for Parquet export.
func ConvertRuns(runs []schema.AnalysisRun) []AnalysisRun {
	result := make([]AnalysisRun, len(runs))
	for i, run := range runs {
		result[i] = AnalysisRun{
			AnalysisID: run.ID,
			CreatedAt:  run.CreatedAt,
			FileCount:  int32(run.FileCount),
			Status:     string(run.Status),
		}
	}
	return result
}

// ConvertRunTree flattens a reconstructed run into per-file score rows.
func ConvertRunTree(tree *schema.RunTree) []FileScore {
	result := make([]FileScore, len(tree.Files))
	for i, ft := range tree.Files {
		// A category without a summary produced no issues and scores perfect.
		row := FileScore{
			AnalysisID:          ft.File.AnalysisID,
			FilePath:            ft.File.FilePath,
			TotalScore:          ft.File.TotalScore,
			ScoreStyle:          100.0,
			ScoreSmell:          100.0,
			ScoreComplexity:     100.0,
			ScoreSecurity:       100.0,
			ScorePotentialError: 100.0,
		}
		for _, summary := range ft.Summaries {
			row.IssueCount += int32(summary.IssueCount)
			switch summary.Category {
			case schema.CodeStyle:
				row.ScoreStyle = summary.Score
			case schema.CodeSmell:
				row.ScoreSmell = summary.Score
			case schema.Complexity:
				row.ScoreComplexity = summary.Score
			case schema.SecurityVulnerability:
				row.ScoreSecurity = summary.Score
			case schema.PotentialError:
				row.ScorePotentialError = summary.Score
			case schema.Documentation:
				ratio := summary.Score
				row.DocumentationRatio = &ratio
			}
		}
		result[i] = row
	}
	return result
}
