package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StdoutReporter prints one human readable line per outcome, or one line per
// row for listings. Colour is dropped when out is not a terminal.
type StdoutReporter struct {
	out     io.Writer
	success lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
}

func NewStdoutReporter(out io.Writer) *StdoutReporter {
	renderer := lipgloss.NewRenderer(out)
	return &StdoutReporter{
		out:     out,
		success: renderer.NewStyle().Foreground(lipgloss.Color("82")),
		warn:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
		failure: renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func (s *StdoutReporter) WriteReport(ctx context.Context, report *Report) error {
	var lines []string
	switch {
	case len(report.Rows) > 0:
		for _, row := range report.Rows {
			lines = append(lines, strings.Join(row, " - "))
		}
	case report.Status == StatusSuccess:
		lines = append(lines, s.success.Render(fmt.Sprintf("Success: %s.", report.Message)))
	case report.Status == StatusAborted:
		lines = append(lines, s.warn.Render(report.Message))
	case report.Status == StatusError:
		lines = append(lines, s.failure.Render(report.Message))
	default:
		lines = append(lines, report.Message)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			return fmt.Errorf("failed to write report to stdout: %w", err)
		}
	}
	return nil
}
