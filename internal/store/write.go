package store

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lintscore/lintscore/schema"
)

// InsertAnalysis creates the analysis row in pending state.
func (rs *ResultStoreImpl) InsertAnalysis(run schema.AnalysisRun) error {
	if rs.disabled() {
		return nil
	}

	query, args, err := rs.builder.
		Insert(analysisTable).
		Columns("id", "file_count", "created_at", "status").
		Values(run.ID, run.FileCount, rs.formatTime(run.CreatedAt), string(run.Status)).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", run.ID, err)
	}
	return nil
}

// InsertFileResult inserts the file row, its summaries and their issues in
// one transaction, back-filling each generated identity before dependent
// rows are written. A failure rolls back the whole file, never leaving a
// summary without its issues.
func (rs *ResultStoreImpl) InsertFileResult(file *schema.FileResult, summaries []schema.MetricSummary) error {
	if rs.disabled() {
		return nil
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fileID, err := rs.insertReturningID(tx,
		rs.builder.Insert(fileTable).
			Columns("analysis_id", "file_path", "total_score").
			Values(file.AnalysisID, file.FilePath, file.TotalScore))
	if err != nil {
		return fmt.Errorf("failed to insert file %s: %w", file.FilePath, err)
	}
	file.ID = fileID

	for i := range summaries {
		summary := &summaries[i]
		summary.FileID = fileID

		summaryID, err := rs.insertReturningID(tx,
			rs.builder.Insert(metricSummaryTable).
				Columns("file_id", "metric_category", "issue_count", "score").
				Values(fileID, string(summary.Category), summary.IssueCount, summary.Score))
		if err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", summary.Category, err)
		}
		summary.ID = summaryID

		for j := range summary.Issues {
			issue := &summary.Issues[j]
			issue.SummaryID = summaryID

			issueID, err := rs.insertReturningID(tx,
				rs.builder.Insert(issueTable).
					Columns("metric_summary_id", "tool", "metric_category", "metric_name",
						"rule_id", "line", "severity", "message").
					Values(summaryID, string(issue.Tool), string(issue.Category), string(issue.Metric),
						issue.RuleID, issue.Line, string(issue.Severity), issue.Message))
			if err != nil {
				return fmt.Errorf("failed to insert issue %s: %w", issue.RuleID, err)
			}
			issue.ID = issueID
		}
	}

	return tx.Commit()
}

// UpdateAnalysisStatus transitions the run to a terminal status.
func (rs *ResultStoreImpl) UpdateAnalysisStatus(analysisID string, status schema.RunStatus) error {
	if rs.disabled() {
		return nil
	}

	query, args, err := rs.builder.
		Update(analysisTable).
		Set("status", string(status)).
		Where(sq.Eq{"id": analysisID}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := rs.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update status for analysis %s: %w", analysisID, err)
	}
	return nil
}

// SaveWeights inserts one weight_history row per category, all under one
// transaction so a run's snapshot is never partial.
func (rs *ResultStoreImpl) SaveWeights(analysisID string, weights schema.WeightTable, errs schema.ErrorTable) error {
	if rs.disabled() {
		return nil
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := rs.formatTime(time.Now().UTC())
	for _, category := range schema.WeightedCategories {
		weight, ok := weights[category]
		if !ok {
			continue
		}

		query, args, err := rs.builder.
			Insert(weightHistoryTable).
			Columns("analysis_id", "metric_category", "weight", "weighted_error", "created_at").
			Values(analysisID, string(category), weight, errs[category], now).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert weight for %s: %w", category, err)
		}
	}

	return tx.Commit()
}

// insertReturningID executes an insert and returns the generated identity.
// PostgreSQL needs RETURNING; SQLite and MySQL report it via LastInsertId.
func (rs *ResultStoreImpl) insertReturningID(tx *sql.Tx, ib sq.InsertBuilder) (int64, error) {
	if rs.backend == schema.PostgreSQLBackend {
		query, args, err := ib.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, err
		}
		var id int64
		if err := tx.QueryRow(query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	query, args, err := ib.ToSql()
	if err != nil {
		return 0, err
	}
	result, err := tx.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
