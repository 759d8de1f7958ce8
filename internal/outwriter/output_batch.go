package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteBatchResults outputs the analysis results, dispatching based on the output format configured.
// Files are ranked worst-first so the files needing attention come on top.
func WriteBatchResults(report *schema.BatchReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	ranked := rankReports(report.Results)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchCSV(w, ranked, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(w, report, ranked, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// rankReports orders file reports worst-first: failed and invalid files
// on top, then analyzed files by ascending score.
func rankReports(results []schema.FileReport) []schema.FileReport {
	ranked := make([]schema.FileReport, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i], ranked[j]
		if ri.Status != rj.Status {
			return statusRank(ri.Status) < statusRank(rj.Status)
		}
		if ri.Score != rj.Score {
			return ri.Score < rj.Score
		}
		return ri.FilePath < rj.FilePath
	})
	return ranked
}

func statusRank(s schema.FileStatus) int {
	switch s {
	case schema.FileFailed:
		return 0
	case schema.FileInvalid:
		return 1
	default:
		return 2
	}
}

// writeBatchTable generates and writes the human-readable table.
func writeBatchTable(writer io.Writer, report *schema.BatchReport, ranked []schema.FileReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Path", "Score", "Label", "Issues", "Status"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, r := range ranked {
		score, label := "-", "-"
		if r.Status == schema.FileSuccess {
			score = fmtFloat(r.Score)
			if cfg.UseColors {
				label = contract.GetColorLabel(r.Score)
			} else {
				label = contract.GetPlainLabel(r.Score)
			}
		}
		row := []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(r.FilePath, getMaxTablePathWidth(cfg)), // File
			score,
			label,
			fmt.Sprintf(intFmt, len(r.Issues)),
			string(r.Status),
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Compute summary stats
	totalIssues := 0
	analyzed := 0
	for _, r := range ranked {
		totalIssues += len(r.Issues)
		if r.Status == schema.FileSuccess {
			analyzed++
		}
	}
	if _, err := fmt.Fprintf(writer, "Run %s (%s): analyzed %d of %d files, %d issues found\n", report.AnalysisID, report.Status, analyzed, len(ranked), totalIssues); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.Backend); err != nil {
		return err
	}
	return nil
}

// writeBatchCSV writes the analysis results in CSV format, one row per issue
// with per-file rows for files that produced none.
func writeBatchCSV(w io.Writer, ranked []schema.FileReport, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"file",
		"score",
		"label",
		"status",
		"tool",
		"category",
		"metric",
		"rule_id",
		"line",
		"severity",
		"message",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range ranked {
			base := []string{
				strconv.Itoa(i + 1),
				r.FilePath,
				fmtFloat(r.Score),
				contract.GetPlainLabel(r.Score),
				string(r.Status),
			}
			if len(r.Issues) == 0 {
				rec := append(append([]string{}, base...), "", "", "", "", "", "", "")
				if r.Error != "" {
					rec[len(rec)-1] = r.Error
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
				continue
			}
			for _, issue := range r.Issues {
				rec := append(append([]string{}, base...),
					string(issue.Tool),
					string(issue.Category),
					string(issue.Metric),
					issue.RuleID,
					fmt.Sprintf(intFmt, issue.Line),
					string(issue.Severity),
					issue.Message,
				)
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
