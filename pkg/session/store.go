package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the session in a sqlite database under the data dir.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) dataDir/session.db.
func OpenStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "session.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize session store: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		expires_at INTEGER NOT NULL DEFAULT 0,
		saved_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Save replaces the stored session.
func (s *Store) Save(sess *Session) error {
	var exp int64
	if !sess.ExpiresAt.IsZero() {
		exp = sess.ExpiresAt.Unix()
	}
	query := `
	INSERT OR REPLACE INTO session (id, token, role, user_id, email, expires_at, saved_at)
	VALUES (1, ?, ?, ?, ?, ?, ?)
	`
	if _, err := s.db.Exec(query, sess.Token, string(sess.Role), sess.UserID, sess.Email, exp, time.Now().Unix()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session, nil when there is none.
func (s *Store) Load() (*Session, error) {
	var (
		sess Session
		role string
		exp  int64
	)
	err := s.db.QueryRow(`SELECT token, role, user_id, email, expires_at FROM session WHERE id = 1`).
		Scan(&sess.Token, &role, &sess.UserID, &sess.Email, &exp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess.Role = Role(role)
	if exp > 0 {
		sess.ExpiresAt = time.Unix(exp, 0)
	}
	return &sess, nil
}

// Clear deletes the stored session.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
