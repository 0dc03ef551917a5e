// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides user/feedback persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db          *sql.DB
	logger      *slog.Logger
	echoQueries bool
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Pragmas go in the DSN so the driver applies them to every connection
	// the pool opens. Foreign keys are per-connection in SQLite; a plain
	// db.Exec would only cover whichever connection happened to run it,
	// and the users -> feedback cascade depends on it being on everywhere.
	// WAL mode improves concurrent read performance.
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// SetEchoQueries toggles debug logging of every executed statement.
func (s *SQLiteStore) SetEchoQueries(on bool) {
	s.echoQueries = on
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS feedback (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			username TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (username) REFERENCES users(username) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_feedback_username
			ON feedback(username);

		CREATE INDEX IF NOT EXISTS idx_feedback_username_created
			ON feedback(username, created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// exec wraps ExecContext with optional statement echo logging.
func (s *SQLiteStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.echoQueries {
		s.logger.Debug("exec", "query", compactQuery(query), "args", args)
	}
	return s.db.ExecContext(ctx, query, args...)
}

// queryRow wraps QueryRowContext with optional statement echo logging.
func (s *SQLiteStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	if s.echoQueries {
		s.logger.Debug("query", "query", compactQuery(query), "args", args)
	}
	return s.db.QueryRowContext(ctx, query, args...)
}

// query wraps QueryContext with optional statement echo logging.
func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.echoQueries {
		s.logger.Debug("query", "query", compactQuery(query), "args", args)
	}
	return s.db.QueryContext(ctx, query, args...)
}

// compactQuery collapses whitespace so echoed statements fit on one log line.
func compactQuery(q string) string {
	return strings.Join(strings.Fields(q), " ")
}

// isUniqueConstraintError checks if an error is a unique constraint violation
// on the named column (e.g. "users.username").
func isUniqueConstraintError(err error, column string) bool {
	if err == nil {
		return false
	}
	// SQLite reports "UNIQUE constraint failed: <table>.<column>"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
