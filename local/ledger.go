package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// ErrTaskNotFound is returned when a task id has no ledger record.
var ErrTaskNotFound = errors.New("task not found")

// Ledger records submitted tasks in a SQLite database.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens or creates a ledger at the given path. Use ":memory:"
// for an ephemeral ledger.
func OpenLedger(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating ledger dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id      TEXT PRIMARY KEY,
			device  TEXT NOT NULL,
			state   TEXT NOT NULL,
			shots   INTEGER NOT NULL,
			source  TEXT NOT NULL,
			params  TEXT NOT NULL,
			results TEXT NOT NULL,
			created TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tasks_device ON tasks(device);
		CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// record is one ledger row. Device is the full "provider::device" name.
type record struct {
	ID      string
	Device  string
	State   string
	Shots   int
	Source  string
	Params  map[string]any
	Results map[string]int64
	Created time.Time
}

func (l *Ledger) insert(ctx context.Context, rec record) error {
	paramsJSON, err := json.Marshal(rec.Params)
	if err != nil {
		return fmt.Errorf("marshaling params: %w", err)
	}
	resultsJSON, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	_, err = l.db.ExecContext(ctx, `
		INSERT INTO tasks (id, device, state, shots, source, params, results, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Device, rec.State, rec.Shots, rec.Source,
		string(paramsJSON), string(resultsJSON), rec.Created.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (l *Ledger) get(ctx context.Context, id string) (record, error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT id, device, state, shots, source, params, results, created
		FROM tasks WHERE id = ?
	`, id)
	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return record{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return rec, err
}

// list returns records newest first. Empty device or state means no filter
// on that column; a positive limit caps the row count.
func (l *Ledger) list(ctx context.Context, device, state string, limit int) ([]record, error) {
	query := `
		SELECT id, device, state, shots, source, params, results, created
		FROM tasks WHERE 1=1
	`
	var args []any
	if device != "" {
		query += " AND device = ?"
		args = append(args, device)
	}
	if state != "" {
		query += " AND state = ?"
		args = append(args, state)
	}
	query += " ORDER BY created DESC, id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var recs []record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanRecord(scan func(...any) error) (record, error) {
	var rec record
	var paramsStr, resultsStr, createdStr string
	err := scan(&rec.ID, &rec.Device, &rec.State, &rec.Shots, &rec.Source,
		&paramsStr, &resultsStr, &createdStr)
	if err == sql.ErrNoRows {
		return record{}, err
	}
	if err != nil {
		return record{}, fmt.Errorf("scanning task: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsStr), &rec.Params); err != nil {
		return record{}, fmt.Errorf("unmarshaling params: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsStr), &rec.Results); err != nil {
		return record{}, fmt.Errorf("unmarshaling results: %w", err)
	}
	rec.Created, err = time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return record{}, fmt.Errorf("parsing created time: %w", err)
	}
	return rec, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
