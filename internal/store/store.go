// Package store persists the conversation log: one row per handled
// message, with the routed intent and whether misinformation was
// detected. Logging is best-effort and never blocks answering.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mythwatch/mythwatch/internal/model"
)

// Entry is one logged exchange.
type Entry struct {
	ID             int64
	Version        string
	User           string
	Intent         model.Intent
	Message        string
	Response       string
	Misinformation bool
	CreatedAt      time.Time
}

// Recorder is the logging capability the router depends on.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NopRecorder discards entries; used when logging is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) error { return nil }

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	version        TEXT NOT NULL,
	user           TEXT NOT NULL,
	intent         TEXT NOT NULL,
	message        TEXT NOT NULL,
	response       TEXT NOT NULL,
	misinformation INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_user ON messages(user, created_at);
`

// ConversationLog is a SQLite-backed Recorder.
type ConversationLog struct {
	db      *sql.DB
	version string
}

// Open creates or opens the conversation log at path.
func Open(path, version string) (*ConversationLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open conversation log: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init conversation log schema: %w", err)
	}

	return &ConversationLog{db: db, version: version}, nil
}

// Record inserts one exchange.
func (l *ConversationLog) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Version == "" {
		entry.Version = l.version
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO messages (version, user, intent, message, response, misinformation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Version, entry.User, string(entry.Intent), entry.Message, entry.Response,
		boolToInt(entry.Misinformation), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

// Recent returns a user's latest entries, newest first.
func (l *ConversationLog) Recent(ctx context.Context, user string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, version, user, intent, message, response, misinformation, created_at
		 FROM messages WHERE user = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		user, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query conversation log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var intent string
		var misinfo int
		if err := rows.Scan(&e.ID, &e.Version, &e.User, &intent, &e.Message, &e.Response, &misinfo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation log row: %w", err)
		}
		e.Intent = model.Intent(intent)
		e.Misinformation = misinfo != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MisinformationCount returns how many logged messages were flagged.
func (l *ConversationLog) MisinformationCount(ctx context.Context) (int64, error) {
	var count int64
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE misinformation = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count flagged messages: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (l *ConversationLog) Close() error {
	return l.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
