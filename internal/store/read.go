package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lintscore/lintscore/schema"
)

// LatestWeights returns the most recent run's weight table and weighted
// errors. A nil error table signals that no prior run exists (bootstrap).
func (rs *ResultStoreImpl) LatestWeights() (schema.WeightTable, schema.ErrorTable, error) {
	if rs.disabled() {
		return nil, nil, nil
	}

	query, args, err := rs.builder.
		Select("analysis_id").
		From(weightHistoryTable).
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	var lastAnalysisID string
	if err := rs.db.QueryRow(query, args...).Scan(&lastAnalysisID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find latest weight snapshot: %w", err)
	}

	query, args, err = rs.builder.
		Select("metric_category", "weight", "weighted_error").
		From(weightHistoryTable).
		Where(sq.Eq{"analysis_id": lastAnalysisID}).
		ToSql()
	if err != nil {
		return nil, nil, err
	}

	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query weight history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	weights := make(schema.WeightTable)
	errsTable := make(schema.ErrorTable)
	for rows.Next() {
		var category string
		var weight, weightedError float64
		if err := rows.Scan(&category, &weight, &weightedError); err != nil {
			return nil, nil, fmt.Errorf("failed to scan weight row: %w", err)
		}
		weights[schema.Category(category)] = weight
		errsTable[schema.Category(category)] = weightedError
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating weight rows: %w", err)
	}

	return weights, errsTable, nil
}

// GetRunTree reconstructs a run's full file/summary/issue tree.
func (rs *ResultStoreImpl) GetRunTree(analysisID string) (*schema.RunTree, error) {
	if rs.disabled() {
		return nil, fmt.Errorf("persistence is disabled")
	}

	run, err := rs.getAnalysis(analysisID)
	if err != nil {
		return nil, err
	}

	files, err := rs.getFiles(analysisID)
	if err != nil {
		return nil, err
	}

	tree := &schema.RunTree{Analysis: *run, Files: make([]schema.FileTree, 0, len(files))}
	for _, file := range files {
		summaries, err := rs.getSummaries(file.ID)
		if err != nil {
			return nil, err
		}
		for i := range summaries {
			issues, err := rs.getIssues(summaries[i].ID)
			if err != nil {
				return nil, err
			}
			summaries[i].Issues = issues
		}
		tree.Files = append(tree.Files, schema.FileTree{File: file, Summaries: summaries})
	}

	return tree, nil
}

// ListRuns returns all analysis runs, oldest first.
func (rs *ResultStoreImpl) ListRuns() ([]schema.AnalysisRun, error) {
	if rs.disabled() {
		return nil, nil
	}

	query, args, err := rs.builder.
		Select("id", "file_count", "created_at", "status").
		From(analysisTable).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.AnalysisRun
	for rows.Next() {
		run, err := rs.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return runs, nil
}

// getAnalysis fetches one analysis row.
func (rs *ResultStoreImpl) getAnalysis(analysisID string) (*schema.AnalysisRun, error) {
	query, args, err := rs.builder.
		Select("id", "file_count", "created_at", "status").
		From(analysisTable).
		Where(sq.Eq{"id": analysisID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := rs.db.QueryRow(query, args...)
	run, err := rs.scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis %s not found", analysisID)
		}
		return nil, fmt.Errorf("failed to load analysis %s: %w", analysisID, err)
	}
	return run, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans one analysis row, handling SQLite's string timestamps.
func (rs *ResultStoreImpl) scanRun(row rowScanner) (*schema.AnalysisRun, error) {
	var run schema.AnalysisRun
	var status string

	if rs.backend == schema.SQLiteBackend {
		var createdAt string
		if err := row.Scan(&run.ID, &run.FileCount, &createdAt, &status); err != nil {
			return nil, err
		}
		parsed, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		run.CreatedAt = parsed
	} else {
		var createdAt time.Time
		if err := row.Scan(&run.ID, &run.FileCount, &createdAt, &status); err != nil {
			return nil, err
		}
		run.CreatedAt = createdAt
	}

	run.Status = schema.RunStatus(status)
	return &run, nil
}

// getFiles fetches the file rows of one run.
func (rs *ResultStoreImpl) getFiles(analysisID string) ([]schema.FileResult, error) {
	query, args, err := rs.builder.
		Select("id", "analysis_id", "file_path", "total_score").
		From(fileTable).
		Where(sq.Eq{"analysis_id": analysisID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []schema.FileResult
	for rows.Next() {
		var f schema.FileResult
		if err := rows.Scan(&f.ID, &f.AnalysisID, &f.FilePath, &f.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// getSummaries fetches the metric summaries of one file.
func (rs *ResultStoreImpl) getSummaries(fileID int64) ([]schema.MetricSummary, error) {
	query, args, err := rs.builder.
		Select("id", "file_id", "metric_category", "issue_count", "score").
		From(metricSummaryTable).
		Where(sq.Eq{"file_id": fileID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []schema.MetricSummary
	for rows.Next() {
		var s schema.MetricSummary
		var category string
		if err := rows.Scan(&s.ID, &s.FileID, &category, &s.IssueCount, &s.Score); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		s.Category = schema.Category(category)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// getIssues fetches the issues of one summary.
func (rs *ResultStoreImpl) getIssues(summaryID int64) ([]schema.Issue, error) {
	query, args, err := rs.builder.
		Select("id", "metric_summary_id", "tool", "metric_category", "metric_name",
			"rule_id", "line", "severity", "message").
		From(issueTable).
		Where(sq.Eq{"metric_summary_id": summaryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var issues []schema.Issue
	for rows.Next() {
		var issue schema.Issue
		var tool, category, metric, severity string
		if err := rows.Scan(&issue.ID, &issue.SummaryID, &tool, &category, &metric,
			&issue.RuleID, &issue.Line, &severity, &issue.Message); err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issue.Tool = schema.Tool(tool)
		issue.Category = schema.Category(category)
		issue.Metric = schema.MetricName(metric)
		issue.Severity = schema.Severity(severity)
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
