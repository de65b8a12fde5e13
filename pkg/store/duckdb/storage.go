package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportRunsSchema = `
	CREATE TABLE IF NOT EXISTS report_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		customer_id VARCHAR NOT NULL,
		report_type VARCHAR NOT NULL,
		query VARCHAR,
		columns JSON,
		row_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const ReportRowsSchema = `
	CREATE TABLE IF NOT EXISTS report_rows (
		run_id VARCHAR NOT NULL,
		seq INTEGER NOT NULL,
		cells JSON,
		PRIMARY KEY (run_id, seq)
	);
`

var bootQueries = []string{
	ReportRunsSchema,
	ReportRowsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
