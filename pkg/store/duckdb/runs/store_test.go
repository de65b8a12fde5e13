package runs

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/ads-atlas/pkg/models/store"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_Add(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	createdAt := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	run := store.ReportRun{
		ID:         "run-001",
		CustomerID: "1234567890",
		ReportType: "campaign-performance",
		Query:      "SELECT campaign.id FROM campaign",
		Columns:    []string{"Campaign ID", "Clicks"},
		CreatedAt:  createdAt,
	}
	rows := []store.ReportRowRecord{
		{RunID: "run-001", Seq: 0, Cells: []string{"991", "42"}},
		{RunID: "run-001", Seq: 1, Cells: []string{"992", "7"}},
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO report_runs (id, customer_id, report_type, query, columns, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)).
		WithArgs(run.ID, run.CustomerID, run.ReportType, run.Query,
			[]byte(`["Campaign ID","Clicks"]`), 2, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	prepared := mock.ExpectPrepare(
		regexp.QuoteMeta(`INSERT INTO report_rows (run_id, seq, cells) VALUES (?, ?, ?)`))
	prepared.ExpectExec().
		WithArgs("run-001", 0, []byte(`["991","42"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prepared.ExpectExec().
		WithArgs("run-001", 1, []byte(`["992","7"]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = s.Add(context.Background(), run, rows)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStore_Add_JoinsAmbientTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO report_runs`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO report_rows`))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	ctx := duckdb.WithTransaction(context.Background(), tx)
	err = s.Add(ctx, store.ReportRun{ID: "run-002"}, nil)
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStore_ListRuns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	createdAt := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "customer_id", "report_type", "query", "columns", "row_count", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, customer_id, report_type, query, columns, row_count, created_at
		FROM report_runs
		WHERE customer_id = ?
		ORDER BY created_at DESC`)).
		WithArgs("1234567890").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("run-001", "1234567890", "campaign-performance",
				"SELECT campaign.id FROM campaign", []byte(`["Campaign ID"]`), 1, createdAt))

	runs, err := s.ListRuns(context.Background(), "1234567890")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-001", runs[0].ID)
	assert.Equal(t, "campaign-performance", runs[0].ReportType)
	assert.Equal(t, []string{"Campaign ID"}, runs[0].Columns)
	assert.Equal(t, 1, runs[0].RowCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStore_GetRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	cols := []string{"run_id", "seq", "cells"}
	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT run_id, seq, cells
		FROM report_rows
		WHERE run_id = ?
		ORDER BY seq`)).
		WithArgs("run-001").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("run-001", 0, []byte(`["991","42"]`)).
			AddRow("run-001", 1, []byte(`["992","7"]`)))

	records, err := s.GetRows(context.Background(), "run-001")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"991", "42"}, records[0].Cells)
	assert.Equal(t, []string{"992", "7"}, records[1].Cells)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStore_RoundTrip(t *testing.T) {
	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	defer db.Close()

	s, err := NewStore(db)
	require.NoError(t, err)

	ctx := context.Background()
	createdAt := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	run := store.ReportRun{
		ID:         "run-001",
		CustomerID: "1234567890",
		ReportType: "campaign-performance",
		Query:      "SELECT campaign.id FROM campaign",
		Columns:    []string{"Campaign ID", "Clicks"},
		CreatedAt:  createdAt,
	}
	records := []store.ReportRowRecord{
		{RunID: "run-001", Seq: 0, Cells: []string{"991", "42"}},
		{RunID: "run-001", Seq: 1, Cells: []string{"992", "7"}},
	}

	require.NoError(t, s.Add(ctx, run, records))

	runs, err := s.ListRuns(ctx, "1234567890")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, run.Columns, runs[0].Columns)
	assert.Equal(t, 2, runs[0].RowCount)

	got, err := s.GetRows(ctx, "run-001")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, records[0].Cells, got[0].Cells)
	assert.Equal(t, records[1].Cells, got[1].Cells)
}
