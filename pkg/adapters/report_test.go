package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func sampleTable() *domain.ReportTable {
	return &domain.ReportTable{
		Columns: []string{"Campaign ID", "Campaign Name", "Conversions"},
		Rows: []domain.ReportRow{
			{Values: []any{int64(991), "Brand", 12.5}},
			{Values: []any{int64(992), "Generic", float64(0)}},
		},
	}
}

func TestMapDomainTableToApi(t *testing.T) {
	out := MapDomainTableToApi("campaign-performance", sampleTable())

	assert.Equal(t, "campaign-performance", out.Report)
	assert.Equal(t, []string{"Campaign ID", "Campaign Name", "Conversions"}, out.Columns)
	assert.Equal(t, [][]string{
		{"991", "Brand", "12.5"},
		{"992", "Generic", "0"},
	}, out.Rows)
}

func TestStoreRunRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	table := sampleTable()

	run, records := MapDomainTableToStoreRun(
		"run-001", "1234567890", "campaign-performance",
		"SELECT campaign.id FROM campaign", table, createdAt)

	assert.Equal(t, "run-001", run.ID)
	assert.Equal(t, 2, run.RowCount)
	assert.Equal(t, table.Columns, run.Columns)
	assert.Equal(t, createdAt, run.CreatedAt)
	assert.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Seq)
	assert.Equal(t, []string{"991", "Brand", "12.5"}, records[0].Cells)

	replayed := MapStoreRunToDomainTable(run, records)
	assert.Equal(t, table.Columns, replayed.Columns)
	assert.Len(t, replayed.Rows, 2)

	// Replayed cell values are the rendered strings, not the original types.
	assert.Equal(t, []any{"991", "Brand", "12.5"}, replayed.Rows[0].Values)
}
