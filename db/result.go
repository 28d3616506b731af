package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/plaindb/plaindb/print"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
)

type Result interface {
	Type() ResultType
	Display()
}

// QueryResult is the read-only outcome of show and mix it up: ordered
// column headers and formatted row cells.
type QueryResult struct {
	Columns          []string
	Data             [][]string
	RecordsRead      int
	ExecutionTimeSec float64
	ExecutionOps     int
}

// CommitResult is the outcome of a mutating command. Persisted reports
// whether the change reached the snapshot file, which it does not while a
// transaction is active.
type CommitResult struct {
	TablesCreated    int
	RowsWritten      int
	RowsDeleted      int
	Persisted        bool
	ExecutionTimeSec float64
	ExecutionOps     int
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	switch {
	case secs < 0.001:
		return "<1ms"
	case secs < 1:
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	case secs < 10:
		return fmt.Sprintf("%.1fs", secs)
	default:
		return fmt.Sprintf("%ds", int(secs))
	}
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display() {
	if len(result.Data) > 0 {
		print.RenderTable(os.Stdout, result.Columns, result.Data, print.Options{})
	}
	fmt.Printf("%d rows (%s)\n", result.RecordsRead, result.ExecutionTime())
}

func (result CommitResult) Display() {
	var parts []string

	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.RowsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d row(s) written", result.RowsWritten))
	}
	if result.RowsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d row(s) deleted", result.RowsDeleted))
	}

	suffix := ""
	if !result.Persisted {
		suffix = ", pending commit"
	}

	if len(parts) == 0 {
		fmt.Printf("OK (%s%s)\n", result.ExecutionTime(), suffix)
	} else {
		fmt.Printf("%s (%s%s)\n", strings.Join(parts, ", "), result.ExecutionTime(), suffix)
	}
}
