package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lintscore/lintscore/internal/contract"
	"github.com/lintscore/lintscore/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRunResults outputs the historical run listing, dispatching based on the output format configured.
func WriteRunResults(runs []schema.AnalysisRun, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsCSV(w, runs, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(w, runs, intFmt)
		}, "Wrote table")
	}
	return nil
}

// writeRunsTable generates and writes the human-readable table.
func writeRunsTable(writer io.Writer, runs []schema.AnalysisRun, intFmt string) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"#", "Run ID", "Files", "Created", "Status"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, run := range runs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			run.ID,
			fmt.Sprintf(intFmt, run.FileCount),
			run.CreatedAt.Format(contract.DateTimeFormat),
			string(run.Status),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d runs\n", len(runs))
	return err
}

// writeRunsCSV writes the run listing in CSV format.
func writeRunsCSV(w io.Writer, runs []schema.AnalysisRun, intFmt string) error {
	header := []string{"rank", "run_id", "file_count", "created_at", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, run := range runs {
			rec := []string{
				strconv.Itoa(i + 1),
				run.ID,
				fmt.Sprintf(intFmt, run.FileCount),
				run.CreatedAt.Format(contract.DateTimeFormat),
				string(run.Status),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
