package store

import (
	"errors"
	"testing"
	"time"

	"github.com/lintscore/lintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSequencer_AppliesOpsInOrder(t *testing.T) {
	var calls []string

	rs := &MockResultStore{}
	rs.On("InsertAnalysis", mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "analysis")
	}).Return(nil)
	rs.On("InsertFileResult", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "file")
	}).Return(nil)
	rs.On("SaveWeights", mock.Anything, mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "weights")
	}).Return(nil)
	rs.On("UpdateAnalysisStatus", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls = append(calls, "status")
	}).Return(nil)

	seq := NewSequencer(rs)
	seq.Start()
	seq.Enqueue(InsertAnalysisOp{Run: schema.AnalysisRun{ID: "run-1"}})
	seq.Enqueue(FileResultOp{File: &schema.FileResult{AnalysisID: "run-1", FilePath: "a.py"}})
	seq.Enqueue(FileResultOp{File: &schema.FileResult{AnalysisID: "run-1", FilePath: "b.py"}})
	seq.Enqueue(SaveWeightsOp{AnalysisID: "run-1", Weights: schema.DefaultWeights})
	seq.Enqueue(UpdateStatusOp{AnalysisID: "run-1", Status: schema.RunSuccess})
	seq.Stop()

	// The consumer is a single goroutine and Stop blocks until it drains,
	// so no synchronization is needed to read calls here.
	assert.Equal(t, []string{"analysis", "file", "file", "weights", "status"}, calls)
}

func TestSequencer_StopDrainsPendingOps(t *testing.T) {
	var applied int

	rs := &MockResultStore{}
	rs.On("InsertFileResult", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		time.Sleep(time.Millisecond)
		applied++
	}).Return(nil)

	seq := NewSequencer(rs)
	seq.Start()
	for i := 0; i < 20; i++ {
		seq.Enqueue(FileResultOp{File: &schema.FileResult{FilePath: "x.py"}})
	}
	seq.Stop()

	assert.Equal(t, 20, applied)
}

func TestSequencer_FailedOpDoesNotStopConsumer(t *testing.T) {
	rs := &MockResultStore{}
	rs.On("InsertAnalysis", mock.Anything).Return(errors.New("disk full"))
	rs.On("UpdateAnalysisStatus", mock.Anything, mock.Anything).Return(nil)

	seq := NewSequencer(rs)
	seq.Start()
	seq.Enqueue(InsertAnalysisOp{Run: schema.AnalysisRun{ID: "run-1"}})
	seq.Enqueue(UpdateStatusOp{AnalysisID: "run-1", Status: schema.RunFailed})
	seq.Stop()

	// The status op still went through after the failed insert.
	rs.AssertCalled(t, "UpdateAnalysisStatus", "run-1", schema.RunFailed)
}

func TestSequencer_ApplyUnknownOp(t *testing.T) {
	seq := NewSequencer(&MockResultStore{})
	require.Error(t, seq.apply(stopOp{}))
}
