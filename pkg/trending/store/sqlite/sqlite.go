package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/olozhika/ArXiv-Trending/pkg/trending/store"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/termfreq"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas are per connection
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
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
	started_at TEXT NOT NULL,
	input_dir TEXT,
	documents INTEGER DEFAULT 0,
	skipped INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS months (
	run_id TEXT NOT NULL,
	month TEXT NOT NULL,
	image TEXT,
	PRIMARY KEY(run_id, month),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS month_terms (
	run_id TEXT NOT NULL,
	month TEXT NOT NULL,
	term TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, month, term),
	FOREIGN KEY(run_id, month) REFERENCES months(run_id, month) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or updates a run record
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, started_at, input_dir, documents, skipped)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	started_at=excluded.started_at,
	input_dir=excluded.input_dir,
	documents=excluded.documents,
	skipped=excluded.skipped;
`, r.ID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.InputDir, r.Documents, r.Skipped)
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

// GetRun returns a run by ID.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, started_at, input_dir, documents, skipped FROM runs WHERE id = ?;
`, id)
	return scanRun(row)
}

// LatestRun returns the most recent run.
func (s *sqliteStore) LatestRun(ctx context.Context) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, started_at, input_dir, documents, skipped FROM runs ORDER BY id DESC LIMIT 1;
`)
	return scanRun(row)
}

func scanRun(row *sql.Row) (store.Run, bool, error) {
	var (
		r         store.Run
		startedAt string
		inputDir  sql.NullString
	)
	err := row.Scan(&r.ID, &startedAt, &inputDir, &r.Documents, &r.Skipped)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	r.InputDir = inputDir.String
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return store.Run{}, false, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}
	return r, true, nil
}

// SaveMonth replaces the stored table of one month of a run.
func (s *sqliteStore) SaveMonth(ctx context.Context, runID string, m store.Month) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO months (run_id, month, image) VALUES (?, ?, ?)
ON CONFLICT(run_id, month) DO UPDATE SET image=excluded.image;
`, runID, m.Month, m.Image); err != nil {
		return fmt.Errorf("save month %s: %w", m.Month, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM month_terms WHERE run_id = ? AND month = ?;`, runID, m.Month); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO month_terms (run_id, month, term, count) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for term, count := range m.Terms {
		if _, err := stmt.ExecContext(ctx, runID, m.Month, term, count); err != nil {
			return fmt.Errorf("save term %q: %w", term, err)
		}
	}

	return tx.Commit()
}

// Months lists the stored months of a run in ascending order.
func (s *sqliteStore) Months(ctx context.Context, runID string) ([]store.MonthSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT m.month, COALESCE(m.image, ''), COUNT(t.term), COALESCE(SUM(t.count), 0)
FROM months m
LEFT JOIN month_terms t ON t.run_id = m.run_id AND t.month = m.month
WHERE m.run_id = ?
GROUP BY m.month, m.image
ORDER BY m.month;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []store.MonthSummary
	for rows.Next() {
		var ms store.MonthSummary
		if err := rows.Scan(&ms.Month, &ms.Image, &ms.Terms, &ms.Total); err != nil {
			return nil, err
		}
		months = append(months, ms)
	}
	return months, rows.Err()
}

// MonthTable loads the table of one month of a run.
func (s *sqliteStore) MonthTable(ctx context.Context, runID, month string) (termfreq.Table, bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM months WHERE run_id = ? AND month = ?;`, runID, month).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT term, count FROM month_terms WHERE run_id = ? AND month = ?;
`, runID, month)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	table := termfreq.New()
	for rows.Next() {
		var (
			term  string
			count int
		)
		if err := rows.Scan(&term, &count); err != nil {
			return nil, false, err
		}
		table[term] = count
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return table, true, nil
}
