// Package store persists playground work between sessions using SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codepad/internal/logging"
)

// Fixed snippet keys. The playground stores the editor buffer under
// KeyContent and the display name under KeyName.
const (
	KeyContent = "content"
	KeyName    = "name"
)

// LocalStore is a small key/value store over SQLite. Values are written by
// the debounced save path and read back at boot to restore the session.
type LocalStore struct {
	db        *sql.DB
	mu        sync.RWMutex
	dbPath    string
	sessionID string
}

// NewLocalStore initializes the SQLite database at the given path.
func NewLocalStore(path string) (*LocalStore, error) {
	log := logging.Get(logging.CategoryStore)
	log.Infow("opening local store", "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debugw("failed to set sqlite busy_timeout", "error", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debugw("failed to set sqlite journal_mode=WAL", "error", err)
	}
	// synchronous=NORMAL is safe with WAL and much faster than FULL.
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		log.Debugw("failed to set sqlite synchronous=NORMAL", "error", err)
	}

	s := &LocalStore{db: db, dbPath: path, sessionID: uuid.NewString()}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the schema if needed.
func (s *LocalStore) initialize() error {
	const schema = `
CREATE TABLE IF NOT EXISTS snippets (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL,
    session_id  TEXT NOT NULL,
    updated_at  TIMESTAMP NOT NULL
);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key, and whether it was present.
func (s *LocalStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM snippets WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
INSERT INTO snippets (key, value, session_id, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    value = excluded.value,
    session_id = excluded.session_id,
    updated_at = excluded.updated_at`,
		key, value, s.sessionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	logging.Get(logging.CategoryStore).Debugw("snippet saved", "key", key, "bytes", len(value))
	return nil
}

// Clear removes all stored snippets.
func (s *LocalStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM snippets"); err != nil {
		return fmt.Errorf("failed to clear snippets: %w", err)
	}
	return nil
}

// SessionID returns the id stamped on rows written by this process.
func (s *LocalStore) SessionID() string {
	return s.sessionID
}

// Close closes the underlying database.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
