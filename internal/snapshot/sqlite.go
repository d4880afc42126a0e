package snapshot

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore persists snapshots to a SQLite database.
// Uses WAL mode for concurrent read access.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path and
// applies pragmas and schema. Idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save overwrites the active snapshot in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO grid_meta (id, max_size) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET max_size = excluded.max_size
	`, snap.MaxSize)
	if err != nil {
		return fmt.Errorf("save snapshot meta: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM grid_slots`); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	for _, rec := range snap.Records {
		tagsJSON, err := marshalTags(rec.Tags)
		if err != nil {
			return fmt.Errorf("save snapshot slot %d: %w", rec.Position, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grid_slots
			(position, occupied, source_item_id, title, description, image_ref, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			rec.Position,
			rec.Occupied,
			rec.SourceItemID,
			rec.Title,
			rec.Description,
			rec.ImageRef,
			tagsJSON,
		)
		if err != nil {
			return fmt.Errorf("save snapshot slot %d: %w", rec.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the active snapshot. ok is false when the database holds no
// snapshot yet.
func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, bool, error) {
	var snap Snapshot
	err := s.db.QueryRowContext(ctx, `SELECT max_size FROM grid_meta WHERE id = 1`).Scan(&snap.MaxSize)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot meta: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT position, occupied, source_item_id, title, description, image_ref, tags
		FROM grid_slots
		ORDER BY position
	`)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec Record
		var tagsJSON string
		if err := rows.Scan(
			&rec.Position,
			&rec.Occupied,
			&rec.SourceItemID,
			&rec.Title,
			&rec.Description,
			&rec.ImageRef,
			&tagsJSON,
		); err != nil {
			return Snapshot{}, false, fmt.Errorf("load snapshot row: %w", err)
		}
		rec.Tags, err = unmarshalTags(tagsJSON)
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("load snapshot row %d: %w", rec.Position, err)
		}
		snap.Records = append(snap.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	return snap, true, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func marshalTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	return tags, nil
}
