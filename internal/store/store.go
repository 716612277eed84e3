// Package store provides the persisted key-value space of the panel: a small
// SQLite database holding string values under string keys, the desktop
// equivalent of the original dashboard's browser storage.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("storage key not found")

// Store is the persistence contract the engine depends on. Values are opaque
// strings; callers serialize to JSON themselves.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// SQLite implements Store on a local SQLite database file.
type SQLite struct {
	db *sql.DB
}

const schema = `
PRAGMA journal_mode=WAL;

CREATE TABLE IF NOT EXISTS storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error { return s.db.Close() }

// Get returns the value stored under key, or ErrNotFound.
func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set writes value under key, replacing any previous value.
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO storage (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// Memory is an in-memory Store for tests and for running without a writable
// data directory. Single-threaded use only, like the UI runtime itself.
type Memory struct {
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key, or ErrNotFound.
func (m *Memory) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes value under key.
func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
