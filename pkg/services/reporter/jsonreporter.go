package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// JSONReporter writes each report as one indented JSON document.
type JSONReporter struct {
	out io.Writer
}

func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

func (j *JSONReporter) WriteReport(ctx context.Context, report *Report) error {
	reportBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	if _, err := fmt.Fprintln(j.out, string(reportBytes)); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
