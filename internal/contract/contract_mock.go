package contract

import (
	"context"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockToolRunner is a mock implementation of ToolRunner for testing.
type MockToolRunner struct {
	mock.Mock
}

var _ ToolRunner = &MockToolRunner{} // Compile-time check

// Run implements the ToolRunner interface.
func (m *MockToolRunner) Run(ctx context.Context, filePath string, exclude []schema.Tool) (schema.ToolResults, error) {
	args := m.Called(ctx, filePath, exclude)
	results, _ := args.Get(0).(schema.ToolResults)
	return results, args.Error(1)
}
