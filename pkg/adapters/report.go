package adapters

import (
	"time"

	"github.com/de-tools/ads-atlas/pkg/models/api"
	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/de-tools/ads-atlas/pkg/models/store"
	"github.com/de-tools/ads-atlas/pkg/services/report"
)

func MapDomainTableToApi(slug string, table *domain.ReportTable) api.ReportTable {
	out := api.ReportTable{
		Report:  slug,
		Columns: table.Columns,
		Rows:    make([][]string, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		out.Rows = append(out.Rows, renderCells(row))
	}
	return out
}

func MapDomainTableToStoreRun(
	runID, customerID, reportType, query string,
	table *domain.ReportTable,
	createdAt time.Time,
) (store.ReportRun, []store.ReportRowRecord) {
	run := store.ReportRun{
		ID:         runID,
		CustomerID: customerID,
		ReportType: reportType,
		Query:      query,
		Columns:    table.Columns,
		RowCount:   len(table.Rows),
		CreatedAt:  createdAt,
	}

	records := make([]store.ReportRowRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		records = append(records, store.ReportRowRecord{
			RunID: runID,
			Seq:   i,
			Cells: renderCells(row),
		})
	}
	return run, records
}

func MapStoreRunToDomainTable(run store.ReportRun, records []store.ReportRowRecord) *domain.ReportTable {
	table := &domain.ReportTable{Columns: run.Columns}
	for _, record := range records {
		values := make([]any, len(record.Cells))
		for i, cell := range record.Cells {
			values[i] = cell
		}
		table.Rows = append(table.Rows, domain.ReportRow{Values: values})
	}
	return table
}

func renderCells(row domain.ReportRow) []string {
	cells := make([]string, len(row.Values))
	for i, v := range row.Values {
		cells[i] = report.FormatValue(v)
	}
	return cells
}
