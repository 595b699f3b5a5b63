package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/area-atlas/pkg/models/store"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
)

// Store keeps the tables of finished reports, keyed by run.
type Store interface {
	Add(ctx context.Context, runID string, tables []store.ReportTable, cells []store.ReportCell) error
	Get(ctx context.Context, runID string) ([]store.ReportTable, []store.ReportCell, error)
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{
		db: db,
	}, nil
}

func (r *reportStore) Add(ctx context.Context, runID string, tables []store.ReportTable, cells []store.ReportCell) error {
	if len(tables) == 0 {
		return nil
	}

	conn := duckdb.Conn(ctx, r.db)

	tableStmt, err := conn.PrepareContext(ctx, `
		INSERT INTO report_tables (run_id, table_index, title, kind, column_names, level_names)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer tableStmt.Close()

	for _, table := range tables {
		columns, err := json.Marshal(table.Columns)
		if err != nil {
			return fmt.Errorf("marshal columns: %w", err)
		}
		levels, err := json.Marshal(table.Levels)
		if err != nil {
			return fmt.Errorf("marshal levels: %w", err)
		}

		_, err = tableStmt.ExecContext(ctx,
			runID,
			table.TableIndex,
			table.Title,
			table.Kind,
			string(columns),
			string(levels),
		)
		if err != nil {
			return fmt.Errorf("insert table: %w", err)
		}
	}

	if len(cells) == 0 {
		return nil
	}

	cellStmt, err := conn.PrepareContext(ctx, `
		INSERT INTO report_cells (run_id, table_index, row_index, column_index, value)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer cellStmt.Close()

	for _, cell := range cells {
		_, err = cellStmt.ExecContext(ctx, runID, cell.TableIndex, cell.RowIndex, cell.ColumnIndex, cell.Value)
		if err != nil {
			return fmt.Errorf("insert cell: %w", err)
		}
	}

	return nil
}

func (r *reportStore) Get(ctx context.Context, runID string) ([]store.ReportTable, []store.ReportCell, error) {
	conn := duckdb.Conn(ctx, r.db)

	rows, err := conn.QueryContext(ctx, `
		SELECT table_index, title, kind, column_names, level_names
		FROM report_tables
		WHERE run_id = ?
		ORDER BY table_index`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query tables: %w", err)
	}
	tables, err := scanTables(rows, runID)
	rows.Close()
	if err != nil {
		return nil, nil, err
	}

	rows, err = conn.QueryContext(ctx, `
		SELECT table_index, row_index, column_index, value
		FROM report_cells
		WHERE run_id = ?
		ORDER BY table_index, row_index, column_index`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	cells := make([]store.ReportCell, 0)
	for rows.Next() {
		cell := store.ReportCell{RunID: runID}
		if err := rows.Scan(&cell.TableIndex, &cell.RowIndex, &cell.ColumnIndex, &cell.Value); err != nil {
			return nil, nil, fmt.Errorf("scan cell: %w", err)
		}
		cells = append(cells, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate cells: %w", err)
	}

	return tables, cells, nil
}

func scanTables(rows *sql.Rows, runID string) ([]store.ReportTable, error) {
	tables := make([]store.ReportTable, 0)
	for rows.Next() {
		table := store.ReportTable{RunID: runID}
		var columns, levels string
		if err := rows.Scan(&table.TableIndex, &table.Title, &table.Kind, &columns, &levels); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		if err := json.Unmarshal([]byte(columns), &table.Columns); err != nil {
			return nil, fmt.Errorf("decode columns: %w", err)
		}
		if err := json.Unmarshal([]byte(levels), &table.Levels); err != nil {
			return nil, fmt.Errorf("decode levels: %w", err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}
