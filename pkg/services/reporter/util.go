package reporter

import (
	"errors"
	"fmt"
	"platform-cli/pkg/services/clierr"
)

// Status classifies the outcome of a single CLI operation.
type Status int

const (
	StatusSuccess Status = iota
	// StatusInfo is a neutral outcome, e.g. an empty listing.
	StatusInfo
	StatusAborted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInfo:
		return "info"
	case StatusAborted:
		return "aborted"
	case StatusError:
		return "error"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Report is everything one operation prints. Listings carry Columns and Rows;
// every other outcome is a single Message.
type Report struct {
	Status  Status     `json:"status"`
	Message string     `json:"message,omitempty"`
	Columns []string   `json:"columns,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
}

func Success(format string, args ...any) *Report {
	return &Report{Status: StatusSuccess, Message: fmt.Sprintf(format, args...)}
}

// Listing reports rows, or the empty message when there are none.
func Listing(columns []string, rows [][]string, empty string) *Report {
	if len(rows) == 0 {
		return &Report{Status: StatusInfo, Message: empty, Columns: columns}
	}
	return &Report{Status: StatusSuccess, Columns: columns, Rows: rows}
}

// FromError turns an operation failure into its report. Declined
// confirmations are reported as aborted, everything else as an error.
func FromError(err error) *Report {
	status := StatusError
	if errors.Is(err, clierr.ErrAborted) {
		status = StatusAborted
	}
	return &Report{Status: status, Message: clierr.Pretty(err)}
}
