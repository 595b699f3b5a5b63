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
		file_name VARCHAR NOT NULL,
		status VARCHAR NOT NULL,
		message VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP NULL
	);
`
const ReportTablesSchema = `
	CREATE TABLE IF NOT EXISTS report_tables (
		run_id VARCHAR NOT NULL,
		table_index INTEGER NOT NULL,
		title VARCHAR NOT NULL,
		kind VARCHAR NOT NULL,
		column_names VARCHAR NOT NULL,
		level_names VARCHAR NOT NULL,
		PRIMARY KEY (run_id, table_index)
	);
`
const ReportCellsSchema = `
	CREATE TABLE IF NOT EXISTS report_cells (
		run_id VARCHAR NOT NULL,
		table_index INTEGER NOT NULL,
		row_index INTEGER NOT NULL,
		column_index INTEGER NOT NULL,
		value DOUBLE NOT NULL,
		PRIMARY KEY (run_id, table_index, row_index, column_index)
	);
`

var bootQueries = []string{
	ReportRunsSchema,
	ReportTablesSchema,
	ReportCellsSchema,
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

// InTransaction runs fn with a transaction carried in ctx, committing when fn
// succeeds and rolling back otherwise.
func InTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(WithTransaction(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
