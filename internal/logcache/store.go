// Package logcache keeps fetched day logs in a local SQLite database so
// revisited days render instantly and stay readable offline.
package logcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gempir/loggy/internal/chatlog"
)

// Store wraps the cache database. Safe for concurrent use; database/sql
// serializes access.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logcache: create cache dir: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("logcache: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("logcache: connect: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS day_logs (
			channel TEXT NOT NULL,
			day TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			messages TEXT NOT NULL,
			PRIMARY KEY (channel, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_day_logs_fetched_at ON day_logs (fetched_at)`,
	}
	for _, statement := range statements {
		if _, err := s.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("logcache: ensure schema: %w", err)
		}
	}
	return nil
}

func dayKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// PutDay stores (or replaces) one channel day of messages.
func (s *Store) PutDay(ctx context.Context, channel string, day time.Time, msgs []chatlog.Message) error {
	payload, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("logcache: encode messages: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO day_logs (channel, day, fetched_at, messages) VALUES (?, ?, ?, ?)
		 ON CONFLICT (channel, day) DO UPDATE SET fetched_at = excluded.fetched_at, messages = excluded.messages`,
		channel, dayKey(day), time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("logcache: store day logs: %w", err)
	}
	return nil
}

// GetDay loads one cached channel day. The second return is false when the
// day has never been cached.
func (s *Store) GetDay(ctx context.Context, channel string, day time.Time) ([]chatlog.Message, time.Time, bool, error) {
	var payload string
	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT messages, fetched_at FROM day_logs WHERE channel = ? AND day = ?`,
		channel, dayKey(day)).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("logcache: load day logs: %w", err)
	}

	var msgs []chatlog.Message
	if err := json.Unmarshal([]byte(payload), &msgs); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("logcache: decode messages: %w", err)
	}
	fetched, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		fetched = time.Time{}
	}
	return msgs, fetched, true, nil
}

// Prune removes cache entries fetched before the cutoff and returns how many
// were dropped.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM day_logs WHERE fetched_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("logcache: prune: %w", err)
	}
	return result.RowsAffected()
}
