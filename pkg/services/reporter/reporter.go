package reporter

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate
import (
	"context"
	"fmt"
	"io"
)

//counterfeiter:generate . OutputWriter
type OutputWriter interface {
	WriteReport(ctx context.Context, report *Report) error
}

const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the accepted values of the output setting.
var Formats = []string{FormatText, FormatCSV, FormatJSON}

// New returns the writer for the named output format.
func New(format string, out io.Writer) (OutputWriter, error) {
	switch format {
	case "", FormatText:
		return NewStdoutReporter(out), nil
	case FormatCSV:
		return NewCsvReporter(out), nil
	case FormatJSON:
		return NewJSONReporter(out), nil
	}
	return nil, fmt.Errorf("unsupported output format %q, expected one of %v", format, Formats)
}
