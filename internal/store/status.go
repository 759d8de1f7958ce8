package store

import (
	"fmt"

	"github.com/lintscore/lintscore/schema"
)

// StoreStatus summarizes the health and contents of the run store.
type StoreStatus struct {
	Backend    string           `json:"backend"`
	Connected  bool             `json:"connected"`
	TotalRuns  int64            `json:"total_runs"`
	LastRunID  string           `json:"last_run_id,omitempty"`
	TableSizes map[string]int64 `json:"table_sizes"`
}

// GetStatus returns status information about the run store.
func (rs *ResultStoreImpl) GetStatus() (StoreStatus, error) {
	status := StoreStatus{
		Backend:    string(rs.backend),
		Connected:  !rs.disabled(),
		TableSizes: make(map[string]int64),
	}

	if rs.disabled() {
		return status, nil
	}

	query, args, err := rs.builder.Select("COUNT(*)").From(analysisTable).ToSql()
	if err != nil {
		return status, err
	}
	if err := rs.db.QueryRow(query, args...).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		query, args, err = rs.builder.
			Select("id").
			From(analysisTable).
			OrderBy("created_at DESC").
			Limit(1).
			ToSql()
		if err != nil {
			return status, err
		}
		if err := rs.db.QueryRow(query, args...).Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run: %w", err)
		}
	}

	tables := []string{analysisTable, fileTable, metricSummaryTable, issueTable, weightHistoryTable}
	for _, table := range tables {
		query, args, err = rs.builder.Select("COUNT(*)").From(table).ToSql()
		if err != nil {
			return status, err
		}
		var count int64
		if err := rs.db.QueryRow(query, args...).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetStoreStatus opens a store for the backend and reports its status.
func GetStoreStatus(backend schema.DatabaseBackend, connStr string) (StoreStatus, error) {
	rs, err := NewResultStore(backend, connStr)
	if err != nil {
		return StoreStatus{}, err
	}
	defer func() { _ = rs.Close() }()

	impl, ok := rs.(*ResultStoreImpl)
	if !ok {
		return StoreStatus{}, fmt.Errorf("unexpected store implementation %T", rs)
	}
	return impl.GetStatus()
}
