package store

import (
	"context"
	"database/sql"

	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/pkg/errors"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

const sqliteBackend = "sqlite"

// SQLiteStore keeps the snapshot in a single table, rewritten per save
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if needed) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewPersistence(sqliteBackend, "failed to open database", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.NewPersistence(sqliteBackend, "failed to enable WAL mode", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.NewPersistence(sqliteBackend, "failed to migrate database", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS snapshot (
		item_key TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		price TEXT NOT NULL,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

// Load reads every row of the snapshot table
func (s *SQLiteStore) Load(ctx context.Context) (wishlist.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT item_key, title, price FROM snapshot")
	if err != nil {
		return nil, errors.NewPersistence(sqliteBackend, "failed to query snapshot", err)
	}
	defer rows.Close()

	snapshot := wishlist.Snapshot{}
	for rows.Next() {
		var itemKey string
		var entry wishlist.Entry
		if err := rows.Scan(&itemKey, &entry.Title, &entry.PriceRaw); err != nil {
			return nil, errors.NewPersistence(sqliteBackend, "failed to scan snapshot row", err)
		}
		snapshot[itemKey] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistence(sqliteBackend, "failed to read snapshot", err)
	}
	return snapshot, nil
}

// Save replaces the table contents in one transaction
func (s *SQLiteStore) Save(ctx context.Context, snapshot wishlist.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewPersistence(sqliteBackend, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshot"); err != nil {
		return errors.NewPersistence(sqliteBackend, "failed to clear snapshot", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot (item_key, title, price) VALUES (?, ?, ?)")
	if err != nil {
		return errors.NewPersistence(sqliteBackend, "failed to prepare insert", err)
	}
	defer stmt.Close()

	for itemKey, entry := range snapshot {
		if _, err := stmt.ExecContext(ctx, itemKey, entry.Title, entry.PriceRaw); err != nil {
			return errors.NewPersistence(sqliteBackend, "failed to insert "+itemKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistence(sqliteBackend, "failed to commit snapshot", err)
	}

	logger.ForStore(sqliteBackend).Debug().Int("items", len(snapshot)).Msg("Snapshot saved")
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
