package domain

import "time"

// ReportTable is the flattened form of one report: a fixed column header list
// and the rows delivered by the platform, in arrival order. Columns always
// equal the query's field display names, not the order values arrived in.
type ReportTable struct {
	Columns []string
	Rows    []ReportRow
}

// ReportRow holds scalar values aligned index-for-index with the owning
// table's Columns. Rows are not modified once produced.
type ReportRow struct {
	Values []any
}

// DateRange is an inclusive calendar-day window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const dateLayout = "2006-01-02"

func (r DateRange) StartString() string {
	return r.Start.Format(dateLayout)
}

func (r DateRange) EndString() string {
	return r.End.Format(dateLayout)
}

// FetchResult is the outcome of one report fetch. Exactly one of Rows/Err is
// meaningful: a failed fetch carries an empty row list and a non-nil Err.
type FetchResult struct {
	Label string
	Rows  []ReportRow
	Err   error
}
