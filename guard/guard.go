// Package guard is a best-effort repeat-action gate for likes and votes. It
// gives the server roughly what a localStorage check gives a client-rendered
// blog: honest visitors are not counted twice, nothing more. Clearing
// cookies, switching networks or spoofing the user agent defeats it, which
// is acceptable for a personal blog. It is not an abuse-prevention system
// and must never gate anything that matters.
package guard

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Store records which visitor already performed which one-shot action.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the guard database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create guard db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open guard db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.loadSalt(); err != nil {
		return nil, fmt.Errorf("load salt: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS actions (
			visitor TEXT NOT NULL,
			key TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (visitor, key)
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// loadSalt reads the per-installation hashing salt, generating and storing
// one on first run. Rotating the salt forgets all recorded actions, which is
// harmless here.
func (s *Store) loadSalt() error {
	var salt string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'hash_salt'`).Scan(&salt)
	if err == sql.ErrNoRows {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(b)
		if _, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES ('hash_salt', ?)`, salt); err != nil {
			return fmt.Errorf("store salt: %w", err)
		}
	} else if err != nil {
		return err
	}
	s.salt = salt
	return nil
}

// Visitor derives an anonymous visitor id from the request's IP and user
// agent. The salted hash keeps raw IPs out of the database.
func (s *Store) Visitor(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// LikeKey is the action key for liking a post.
func LikeKey(postID string) string {
	return "storage:" + postID + ":likes"
}

// VoteKey is the action key for voting on a block of a post.
func VoteKey(postID, blockID string) string {
	return "voting:" + postID + ":" + blockID
}

// Mark records that the visitor performed the action. It returns true when
// this is the first time, false on a repeat. A database failure logs and
// reports true: when the guard is broken the feature keeps working and may
// double count, which beats a broken feature.
func (s *Store) Mark(visitor, key string) bool {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO actions (visitor, key, created_at) VALUES (?, ?, ?)`,
		visitor, key, time.Now().UTC(),
	)
	if err != nil {
		log.Errorf("guard: mark %s: %s", key, err)
		return true
	}
	n, err := res.RowsAffected()
	if err != nil {
		log.Errorf("guard: mark %s: rows affected: %s", key, err)
		return true
	}
	return n == 1
}

// Unmark forgets a recorded action, so the visitor can perform it again.
// Returns true when something was actually forgotten.
func (s *Store) Unmark(visitor, key string) bool {
	res, err := s.db.Exec(`DELETE FROM actions WHERE visitor = ? AND key = ?`, visitor, key)
	if err != nil {
		log.Errorf("guard: unmark %s: %s", key, err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false
	}
	return n == 1
}

// Seen reports whether the visitor already performed the action.
func (s *Store) Seen(visitor, key string) bool {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM actions WHERE visitor = ? AND key = ?`, visitor, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		log.Errorf("guard: seen %s: %s", key, err)
		return false
	}
	return true
}
