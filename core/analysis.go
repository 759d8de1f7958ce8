// Package core implements the analysis pipeline: normalization, scoring,
// adaptive weight learning, orchestration and run comparison.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/internal/store"
	"github.com/lintscore/lintscore/schema"
)

// analyzableExtension is the only file type admitted into a batch.
const analyzableExtension = ".py"

// AnalyzeFiles runs the full pipeline over a batch of files: one worker
// task per file, results serialized through a single-writer sequencer,
// and an adaptive weight update once all files are done.
//
// The weight table is read exactly once, before any worker starts; every
// file in the batch is scored against that same table. Run status is
// decided once by the orchestrator after all workers complete: failed if
// any admissible file failed, success otherwise.
func AnalyzeFiles(ctx context.Context, cfg *contract.Config, paths []string, runner contract.ToolRunner, rs contract.ResultStore) (*schema.BatchReport, error) {
	analysisID := uuid.NewString()
	run := schema.AnalysisRun{
		ID:        analysisID,
		FileCount: len(paths),
		CreatedAt: time.Now().UTC(),
		Status:    schema.RunPending,
	}

	// Weights in effect for this run: the previous run's table, or the
	// static defaults when no run has happened yet.
	prevWeights, prevE, err := rs.LatestWeights()
	if err != nil {
		contract.LogWarn("Could not load previous weights; using defaults", err)
		prevWeights, prevE = nil, nil
	}
	weights := prevWeights
	if len(weights) == 0 {
		weights = schema.DefaultWeights.Clone()
	}

	// The sequencer is the only goroutine that touches the store until
	// Stop returns. The analysis row goes in before any worker can
	// produce a file row.
	seq := store.NewSequencer(rs)
	seq.Start()
	seq.Enqueue(store.InsertAnalysisOp{Run: run})

	reports := analyzeBatch(ctx, cfg, analysisID, paths, runner, weights, seq)

	status := schema.RunSuccess
	var analyzed int
	var allSummaries []schema.MetricSummary
	for _, report := range reports {
		switch report.Status {
		case schema.FileFailed:
			status = schema.RunFailed
		case schema.FileSuccess:
			analyzed++
			allSummaries = append(allSummaries, report.Summaries...)
		}
	}

	// Learn the next run's weights from this batch's aggregate error.
	currE := ComputeWeightedError(allSummaries, analyzed)
	var nextWeights schema.WeightTable
	if len(prevE) == 0 {
		nextWeights = schema.DefaultWeights.Clone()
	} else {
		nextWeights = UpdateAdaptiveWeights(weights, prevE, currE)
	}

	seq.Enqueue(store.SaveWeightsOp{AnalysisID: analysisID, Weights: nextWeights, Errors: currE})
	seq.Enqueue(store.UpdateStatusOp{AnalysisID: analysisID, Status: status})

	// The batch is not complete until the sequencer has drained.
	seq.Stop()

	return &schema.BatchReport{
		AnalysisID: analysisID,
		Status:     status,
		FileCount:  len(reports),
		Results:    reports,
	}, nil
}

// analyzeBatch processes all files in parallel using a worker pool.
// Tasks are independent and order-insensitive; reports are collected
// without regard to submission order.
func analyzeBatch(ctx context.Context, cfg *contract.Config, analysisID string, paths []string, runner contract.ToolRunner, weights schema.WeightTable, seq *store.Sequencer) []schema.FileReport {
	fileCh := make(chan string, len(paths))
	reportCh := make(chan schema.FileReport, len(paths))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for path := range fileCh {
				reportCh <- analyzeOneFile(ctx, cfg, analysisID, path, runner, weights, seq)
			}
		})
	}

	for _, path := range paths {
		fileCh <- path
	}
	close(fileCh)

	wg.Wait()
	close(reportCh)

	reports := make([]schema.FileReport, 0, len(paths))
	for r := range reportCh {
		reports = append(reports, r)
	}
	return reports
}

// analyzeOneFile runs the per-file pipeline: admissibility check, tool
// invocation, normalization, summary building, scoring, then a single
// hand-off of the persistable result to the sequencer. Any failure is
// contained to this file.
func analyzeOneFile(ctx context.Context, cfg *contract.Config, analysisID, path string, runner contract.ToolRunner, weights schema.WeightTable, seq *store.Sequencer) (report schema.FileReport) {
	report = schema.FileReport{
		FileName: filepath.Base(path),
		FilePath: path,
		Issues:   []schema.Issue{},
	}

	defer func() {
		if r := recover(); r != nil {
			report.Status = schema.FileFailed
			report.Error = fmt.Sprintf("panic during analysis: %v", r)
			report.Issues = []schema.Issue{}
			report.Summaries = nil
		}
	}()

	if !admissible(path) {
		report.Status = schema.FileInvalid
		return report
	}

	raw, err := runner.Run(ctx, path, cfg.ExcludeTools)
	if err != nil {
		report.Status = schema.FileFailed
		report.Error = err.Error()
		return report
	}

	issues := NormalizeIssues(raw, cfg.ExcludeTools)
	summaries := BuildMetricSummaries(issues)
	score := CalculateFileScore(summaries, weights)

	// The persisted summaries are a separate copy: ownership transfers to
	// the sequencer at the queue boundary, and only the sequencer mutates
	// them afterwards (ID back-fill).
	persisted := make([]schema.MetricSummary, len(summaries))
	copy(persisted, summaries)
	seq.Enqueue(store.FileResultOp{
		File: &schema.FileResult{
			AnalysisID: analysisID,
			FilePath:   path,
			TotalScore: score,
		},
		Summaries: persisted,
	})

	report.Status = schema.FileSuccess
	report.Score = score
	report.Issues = issues
	report.Summaries = summaries
	return report
}

// admissible reports whether a path can enter the pipeline at all.
func admissible(path string) bool {
	if path == "" || !strings.EqualFold(filepath.Ext(path), analyzableExtension) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
