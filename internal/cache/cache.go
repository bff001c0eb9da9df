package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists translations keyed by source text, target language, and
// model so repeated runs skip already-translated cues.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

const schema = `
CREATE TABLE IF NOT EXISTS translations (
    key         TEXT PRIMARY KEY,
    source_text TEXT NOT NULL,
    target_lang TEXT NOT NULL,
    model       TEXT NOT NULL,
    translated  TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_translations_lang_model ON translations(target_lang, model);
`

// Open initializes or connects to the translation cache database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key derives the cache key for a source text under a target language and
// model.
func Key(sourceText, targetLang, model string) string {
	sum := sha256.Sum256([]byte(sourceText))
	return hex.EncodeToString(sum[:]) + ":" + strings.ToLower(targetLang) + ":" + model
}

// Get returns the cached translation, or ok=false on a miss.
func (s *Store) Get(ctx context.Context, sourceText, targetLang, model string) (translated string, ok bool, err error) {
	ctx = ensureContext(ctx)
	key := Key(sourceText, targetLang, model)

	err = retryOnBusy(ctx, func() error {
		row := s.db.QueryRowContext(ctx, `SELECT translated FROM translations WHERE key = ?`, key)
		return row.Scan(&translated)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return translated, true, nil
}

// Put stores a translation, replacing any previous entry for the key.
func (s *Store) Put(ctx context.Context, sourceText, targetLang, model, translated string) error {
	ctx = ensureContext(ctx)
	key := Key(sourceText, targetLang, model)

	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
INSERT INTO translations (key, source_text, target_lang, model, translated)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET translated = excluded.translated, created_at = CURRENT_TIMESTAMP`,
			key, sourceText, targetLang, model, translated)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Count returns the number of cached translations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return count, nil
}

// Purge removes every cached translation.
func (s *Store) Purge(ctx context.Context) error {
	ctx = ensureContext(ctx)
	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `DELETE FROM translations`)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("cache purge: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
