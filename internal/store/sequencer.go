package store

import (
	"fmt"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
)

// Op is one serialized persistence operation. The variants form a closed
// sum; workers and the orchestrator produce them concurrently and exactly
// one consumer applies them in dequeue order.
type Op interface {
	isOp()
}

// InsertAnalysisOp creates the analysis row in pending state.
type InsertAnalysisOp struct {
	Run schema.AnalysisRun
}

// FileResultOp persists one file with its summaries and issues. Ownership
// of File and Summaries transfers to the sequencer at the queue boundary;
// only the sequencer mutates them afterwards (ID back-fill).
type FileResultOp struct {
	File      *schema.FileResult
	Summaries []schema.MetricSummary
}

// UpdateStatusOp transitions the run to a terminal status.
type UpdateStatusOp struct {
	AnalysisID string
	Status     schema.RunStatus
}

// SaveWeightsOp records the run's weight snapshot.
type SaveWeightsOp struct {
	AnalysisID string
	Weights    schema.WeightTable
	Errors     schema.ErrorTable
}

// stopOp is the terminate sentinel.
type stopOp struct{}

func (InsertAnalysisOp) isOp() {}
func (FileResultOp) isOp()     {}
func (UpdateStatusOp) isOp()   {}
func (SaveWeightsOp) isOp()    {}
func (stopOp) isOp()           {}

// opQueueSize buffers enqueues so workers rarely block on the sequencer.
const opQueueSize = 256

// Sequencer is the single writer for one batch. Exactly one goroutine
// holds the storage connection for the batch's duration, which removes
// write-write contention on the underlying store. Lifecycle is scoped to
// one batch: construct, Start, enqueue, Stop.
type Sequencer struct {
	store contract.ResultStore
	ops   chan Op
	done  chan struct{}
}

// NewSequencer creates a sequencer writing through the given store.
func NewSequencer(rs contract.ResultStore) *Sequencer {
	return &Sequencer{
		store: rs,
		ops:   make(chan Op, opQueueSize),
		done:  make(chan struct{}),
	}
}

// Start launches the consumer goroutine. It runs until the terminate
// sentinel is dequeued.
func (s *Sequencer) Start() {
	go func() {
		defer close(s.done)
		for op := range s.ops {
			if _, stop := op.(stopOp); stop {
				return
			}
			if err := s.apply(op); err != nil {
				// A failed op rolls back its own transaction; later ops
				// still apply.
				contract.LogWarn("Persistence operation failed", err)
			}
		}
	}()
}

// Enqueue submits one operation. Safe for concurrent use.
func (s *Sequencer) Enqueue(op Op) {
	s.ops <- op
}

// Stop submits the terminate sentinel and blocks until the consumer has
// drained every operation enqueued before it. The batch is not complete
// until Stop returns.
func (s *Sequencer) Stop() {
	s.ops <- stopOp{}
	<-s.done
}

// apply executes one operation against the store.
func (s *Sequencer) apply(op Op) error {
	switch v := op.(type) {
	case InsertAnalysisOp:
		return s.store.InsertAnalysis(v.Run)
	case FileResultOp:
		return s.store.InsertFileResult(v.File, v.Summaries)
	case UpdateStatusOp:
		return s.store.UpdateAnalysisStatus(v.AnalysisID, v.Status)
	case SaveWeightsOp:
		return s.store.SaveWeights(v.AnalysisID, v.Weights, v.Errors)
	default:
		return fmt.Errorf("unhandled operation %T", op)
	}
}
