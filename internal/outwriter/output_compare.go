package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the run comparison, dispatching based on the output format configured.
func WriteComparisonResults(cmp schema.BatchComparison, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, cmp)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, cmp, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, cmp, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonTable writes the per-category metrics in a custom comparison format.
func writeComparisonTable(writer io.Writer, cmp schema.BatchComparison, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(writer, "Comparing run %s (%d files, %s) with run %s (%d files, %s)\n",
		cmp.Batch1.ID, cmp.Batch1.FileCount, cmp.Batch1.CreatedAt.Format(contract.DateTimeFormat),
		cmp.Batch2.ID, cmp.Batch2.FileCount, cmp.Batch2.CreatedAt.Format(contract.DateTimeFormat)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(writer)

	// --- 1. Define Headers (Comparison Mode) ---
	headers := []string{
		"Category",
		"Metric",
		"Before",
		"After",
		"Delta",
		"Trend",
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// --- 3. Prepare Data Rows ---
	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	formatTrend := func(v schema.ValueComparison) (string, string) {
		var deltaStr string
		switch v.Trend {
		case schema.TrendImproved:
			deltaStr = green(fmt.Sprintf("%+.*f", cfg.Precision, v.Difference))
		case schema.TrendWorsened:
			deltaStr = red(fmt.Sprintf("%+.*f", cfg.Precision, v.Difference))
		default:
			deltaStr = yellow(fmt.Sprintf("%.*f", cfg.Precision, 0.0))
		}
		return deltaStr, string(v.Trend)
	}

	var data [][]string
	for _, category := range schema.AllCategories {
		cc, ok := cmp.Metrics[category]
		if !ok {
			continue
		}
		rows := []struct {
			label string
			value schema.ValueComparison
		}{
			{"avg issues/file", cc.AvgIssuesPerFile},
			{"avg score", cc.AvgScore},
			{"files w/ issues %", cc.FilesWithIssuePct},
		}
		for _, r := range rows {
			deltaStr, trend := formatTrend(r.value)
			data = append(data, []string{
				string(category),
				r.label,
				fmtFloat(r.value.Batch1),
				fmtFloat(r.value.Batch2),
				deltaStr,
				trend,
			})
		}
	}

	// --- 4. Render the table ---
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Overall weighted movement
	overall := cmp.Overall
	if _, err := fmt.Fprintf(writer, "Weighted score: %.*f -> %.*f (%+.*f, %s)\n",
		cfg.Precision, overall.Batch1WeightedScore,
		cfg.Precision, overall.Batch2WeightedScore,
		cfg.Precision, overall.WeightedDifference,
		overall.Trend); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes the comparison data to a CSV writer.
func writeComparisonCSV(w io.Writer, cmp schema.BatchComparison, fmtFloat func(float64) string) error {
	header := []string{
		"category",
		"metric",
		"batch1",
		"batch2",
		"difference",
		"trend",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, category := range schema.AllCategories {
			cc, ok := cmp.Metrics[category]
			if !ok {
				continue
			}
			rows := []struct {
				label string
				value schema.ValueComparison
			}{
				{"avg_issues_per_file", cc.AvgIssuesPerFile},
				{"avg_score", cc.AvgScore},
				{"files_with_issues_pct", cc.FilesWithIssuePct},
			}
			for _, r := range rows {
				rec := []string{
					string(category),
					r.label,
					fmtFloat(r.value.Batch1),
					fmtFloat(r.value.Batch2),
					fmtFloat(r.value.Difference),
					string(r.value.Trend),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		rec := []string{
			"overall",
			"weighted_score",
			fmtFloat(cmp.Overall.Batch1WeightedScore),
			fmtFloat(cmp.Overall.Batch2WeightedScore),
			fmtFloat(cmp.Overall.WeightedDifference),
			string(cmp.Overall.Trend),
		}
		return cw.Write(rec)
	})
}
