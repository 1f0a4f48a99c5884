package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry records one served transcription request.
type Entry struct {
	ID        string
	AudioPath string
	Text      string
	Error     string
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Succeeded reports whether the request produced a transcript.
func (e Entry) Succeeded() bool { return e.Error == "" }

// Store persists the request journal in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Fixed-width UTC layout so lexicographic ordering matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS requests (
    id         TEXT PRIMARY KEY,
    audio_path TEXT NOT NULL,
    text       TEXT NOT NULL DEFAULT '',
    error      TEXT NOT NULL DEFAULT '',
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at);
`

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
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
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts an entry and returns its generated id.
func (s *Store) Record(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO requests (id, audio_path, text, error, elapsed_ms, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.AudioPath,
		entry.Text,
		entry.Error,
		entry.Elapsed.Milliseconds(),
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return "", fmt.Errorf("insert request: %w", err)
	}
	return entry.ID, nil
}

// List returns the most recent entries, newest first. A non-positive
// limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	// rowid tiebreak keeps insertion order for entries sharing a timestamp.
	query := `SELECT id, audio_path, text, error, elapsed_ms, created_at
              FROM requests ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			elapsedMs int64
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.AudioPath, &entry.Text, &entry.Error, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		entry.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if parsed, parseErr := time.Parse(timeLayout, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM requests`)
	if err != nil {
		return 0, fmt.Errorf("clear requests: %w", err)
	}
	return res.RowsAffected()
}
