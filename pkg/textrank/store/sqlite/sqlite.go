package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textrank/pkg/textrank/internalerr"
	"github.com/cognicore/textrank/pkg/textrank/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	window_size INTEGER NOT NULL,
	top_n INTEGER,
	keywords TEXT NOT NULL,
	candidates INTEGER NOT NULL DEFAULT 0,
	iterations INTEGER NOT NULL DEFAULT 0,
	converged INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source, id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	r = store.Prepare(r, time.Now())

	keywordsJSON, err := json.Marshal(r.Keywords)
	if err != nil {
		return store.Run{}, err
	}
	var topN sql.NullInt64
	if r.TopN != nil {
		topN = sql.NullInt64{Int64: int64(*r.TopN), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, source, window_size, top_n, keywords, candidates, iterations, converged, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	source=excluded.source,
	window_size=excluded.window_size,
	top_n=excluded.top_n,
	keywords=excluded.keywords,
	candidates=excluded.candidates,
	iterations=excluded.iterations,
	converged=excluded.converged,
	created_at=excluded.created_at;
`, r.ID, r.Source, r.Window, topN, string(keywordsJSON), r.Candidates, r.Iterations, r.Converged,
		r.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return store.Run{}, fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return r, nil
}

const runColumns = `id, source, window_size, top_n, keywords, candidates, iterations, converged, created_at`

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, err
}

// ListRuns returns the most recent runs, optionally for one source
func (s *sqliteStore) ListRuns(ctx context.Context, q store.Query) ([]store.Run, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if q.Source != "" {
		rows, err = s.db.QueryContext(ctx, `
SELECT `+runColumns+`
FROM runs
WHERE source = ?
ORDER BY id DESC
LIMIT ?;
`, q.Source, q.EffectiveLimit())
	} else {
		rows, err = s.db.QueryContext(ctx, `
SELECT `+runColumns+`
FROM runs
ORDER BY id DESC
LIMIT ?;
`, q.EffectiveLimit())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run by ID
func (s *sqliteStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r            store.Run
		topN         sql.NullInt64
		keywordsJSON string
		createdAt    string
	)
	if err := sc.Scan(&r.ID, &r.Source, &r.Window, &topN, &keywordsJSON,
		&r.Candidates, &r.Iterations, &r.Converged, &createdAt); err != nil {
		return store.Run{}, err
	}
	if topN.Valid {
		n := int(topN.Int64)
		r.TopN = &n
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &r.Keywords); err != nil {
		return store.Run{}, fmt.Errorf("run %s keywords: %w", r.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	return r, nil
}
