package storage

import (
	"database/sql"
	"errors"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// LocalStore is the durable store: one row per key, text values, backed by
// a sqlite file (or ":memory:" in tests). There is no schema for domain
// data and no versioning; concurrent writers get last-write-wins.
type LocalStore struct {
	conn *sql.DB
}

// NewLocalStore opens (or creates) the backing database and ensures the
// records table exists.
func NewLocalStore(path string) (*LocalStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	s := &LocalStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *LocalStore) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Get returns the record stored under key.
func (s *LocalStore) Get(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes the record under key, overwriting any previous value.
func (s *LocalStore) Set(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// Remove deletes the record under key.
func (s *LocalStore) Remove(key string) error {
	_, err := s.conn.Exec("DELETE FROM records WHERE key = ?", key)
	return err
}

// Close closes the database connection.
func (s *LocalStore) Close() error {
	return s.conn.Close()
}
