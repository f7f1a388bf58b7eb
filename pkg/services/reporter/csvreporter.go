package reporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// CsvReporter writes listings as CSV with a header row. Single-message
// outcomes become a status,message pair.
type CsvReporter struct {
	out io.Writer
}

func NewCsvReporter(out io.Writer) *CsvReporter {
	return &CsvReporter{out: out}
}

func (c *CsvReporter) WriteReport(ctx context.Context, report *Report) error {
	csvWriter := csv.NewWriter(c.out)

	var records [][]string
	if len(report.Columns) > 0 && report.Status != StatusError && report.Status != StatusAborted {
		records = append(records, report.Columns)
		records = append(records, report.Rows...)
	} else {
		records = [][]string{
			{"status", "message"},
			{report.Status.String(), report.Message},
		}
	}

	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}
