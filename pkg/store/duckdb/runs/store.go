package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/area-atlas/pkg/models/store"
	"github.com/de-tools/area-atlas/pkg/store/duckdb"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("run not found")

type Store interface {
	Create(ctx context.Context, identity store.RunIdentity) (*store.Run, error)
	Finish(ctx context.Context, id string, status store.RunStatus, message string) error
	List(ctx context.Context, statuses []store.RunStatus) ([]*store.Run, error)
	Get(ctx context.Context, id string) (*store.Run, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *defaultStore) Create(ctx context.Context, identity store.RunIdentity) (*store.Run, error) {
	if identity.FileName == "" {
		return nil, fmt.Errorf("file name is required")
	}
	id := identity.ID
	if id == "" {
		id = uuid.NewString()
	}

	run := &store.Run{
		ID:        id,
		FileName:  identity.FileName,
		Status:    store.RunStatusRunning,
		CreatedAt: s.now(),
	}

	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO report_runs (id, file_name, status, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.FileName, string(run.Status), run.Message, run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

func (s *defaultStore) Finish(ctx context.Context, id string, status store.RunStatus, message string) error {
	if status == store.RunStatusRunning {
		return fmt.Errorf("cannot finish run %s with status %s", id, status)
	}

	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE report_runs SET status = ?, message = ?, finished_at = ? WHERE id = ?`,
		string(status), message, s.now(), id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *defaultStore) List(ctx context.Context, statuses []store.RunStatus) ([]*store.Run, error) {
	query := `SELECT id, file_name, status, message, created_at, finished_at FROM report_runs`
	args := make([]interface{}, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, st := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, string(st))
		}
		query += fmt.Sprintf(" WHERE status IN (%s)", strings.Join(placeholders, ","))
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*store.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *defaultStore) Get(ctx context.Context, id string) (*store.Run, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, file_name, status, message, created_at, finished_at FROM report_runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*store.Run, error) {
	var (
		run      store.Run
		status   string
		message  sql.NullString
		finished sql.NullTime
	)
	if err := row.Scan(&run.ID, &run.FileName, &status, &message, &run.CreatedAt, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	run.Status = store.RunStatus(status)
	run.Message = message.String
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
