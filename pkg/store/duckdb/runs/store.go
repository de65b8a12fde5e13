package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/ads-atlas/pkg/models/store"
	"github.com/de-tools/ads-atlas/pkg/store/duckdb"
)

// Store persists report runs and their rows. Writes join an ambient
// transaction when one is carried in the context.
type Store interface {
	Add(ctx context.Context, run store.ReportRun, rows []store.ReportRowRecord) error
	ListRuns(ctx context.Context, customerID string) ([]store.ReportRun, error)
	GetRows(ctx context.Context, runID string) ([]store.ReportRowRecord, error)
}

type runStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &runStore{db: db}, nil
}

func (s *runStore) Add(ctx context.Context, run store.ReportRun, rows []store.ReportRowRecord) error {
	columns, err := json.Marshal(run.Columns)
	if err != nil {
		return fmt.Errorf("marshal columns: %w", err)
	}

	exec := s.execer(ctx)
	_, err = exec.ExecContext(ctx, `
		INSERT INTO report_runs (id, customer_id, report_type, query, columns, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CustomerID, run.ReportType, run.Query, columns, len(rows), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := exec.PrepareContext(ctx, `INSERT INTO report_rows (run_id, seq, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		cells, err := json.Marshal(row.Cells)
		if err != nil {
			return fmt.Errorf("marshal cells: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, row.Seq, cells); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}
	return nil
}

func (s *runStore) ListRuns(ctx context.Context, customerID string) ([]store.ReportRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_id, report_type, query, columns, row_count, created_at
		FROM report_runs
		WHERE customer_id = ?
		ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []store.ReportRun
	for rows.Next() {
		var run store.ReportRun
		var columns []byte
		if err := rows.Scan(&run.ID, &run.CustomerID, &run.ReportType, &run.Query,
			&columns, &run.RowCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if len(columns) > 0 {
			if err := json.Unmarshal(columns, &run.Columns); err != nil {
				return nil, fmt.Errorf("unmarshal columns: %w", err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *runStore) GetRows(ctx context.Context, runID string) ([]store.ReportRowRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, seq, cells
		FROM report_rows
		WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var records []store.ReportRowRecord
	for rows.Next() {
		var record store.ReportRowRecord
		var cells []byte
		if err := rows.Scan(&record.RunID, &record.Seq, &cells); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if len(cells) > 0 {
			if err := json.Unmarshal(cells, &record.Cells); err != nil {
				return nil, fmt.Errorf("unmarshal cells: %w", err)
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *runStore) execer(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}
