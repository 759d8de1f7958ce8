package store

import (
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// InsertAnalysis implements the ResultStore interface.
func (m *MockResultStore) InsertAnalysis(run schema.AnalysisRun) error {
	args := m.Called(run)
	return args.Error(0)
}

// InsertFileResult implements the ResultStore interface.
func (m *MockResultStore) InsertFileResult(file *schema.FileResult, summaries []schema.MetricSummary) error {
	args := m.Called(file, summaries)
	return args.Error(0)
}

// UpdateAnalysisStatus implements the ResultStore interface.
func (m *MockResultStore) UpdateAnalysisStatus(analysisID string, status schema.RunStatus) error {
	args := m.Called(analysisID, status)
	return args.Error(0)
}

// SaveWeights implements the ResultStore interface.
func (m *MockResultStore) SaveWeights(analysisID string, weights schema.WeightTable, errs schema.ErrorTable) error {
	args := m.Called(analysisID, weights, errs)
	return args.Error(0)
}

// LatestWeights implements the ResultStore interface.
func (m *MockResultStore) LatestWeights() (schema.WeightTable, schema.ErrorTable, error) {
	args := m.Called()
	weights, _ := args.Get(0).(schema.WeightTable)
	errs, _ := args.Get(1).(schema.ErrorTable)
	return weights, errs, args.Error(2)
}

// GetRunTree implements the ResultStore interface.
func (m *MockResultStore) GetRunTree(analysisID string) (*schema.RunTree, error) {
	args := m.Called(analysisID)
	tree, _ := args.Get(0).(*schema.RunTree)
	return tree, args.Error(1)
}

// ListRuns implements the ResultStore interface.
func (m *MockResultStore) ListRuns() ([]schema.AnalysisRun, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRun)
	return runs, args.Error(1)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
