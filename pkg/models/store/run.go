package store

import "time"

// ReportRun is one persisted report execution.
type ReportRun struct {
	ID         string
	CustomerID string
	ReportType string
	Query      string
	Columns    []string
	RowCount   int
	CreatedAt  time.Time
}

// ReportRowRecord is one persisted row of a run, keyed by its position in
// the delivered result.
type ReportRowRecord struct {
	RunID string
	Seq   int
	Cells []string
}
