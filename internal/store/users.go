// ABOUTME: User store methods for the SQLite backend
// ABOUTME: Covers creation with uniqueness classification, lookup, and cascading delete

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// CreateUser persists a new user. A unique-constraint violation on the
// username or email column is classified into ErrUsernameExists or
// ErrEmailExists so callers can surface a field-level error; the failed
// insert is not retried.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (username, password_hash, email, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.exec(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err, "users.username") {
			return ErrUsernameExists
		}
		if isUniqueConstraintError(err, "users.email") {
			return ErrEmailExists
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("created user", "username", user.Username)
	return nil
}

// GetUser retrieves a user by username.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT username, password_hash, email, first_name, last_name, created_at
		FROM users
		WHERE username = ?
	`

	var user User
	var createdAtStr string

	err := s.queryRow(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&createdAtStr,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	user.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &user, nil
}

// DeleteUser removes a user. Their feedback rows are removed by the
// ON DELETE CASCADE foreign key.
func (s *SQLiteStore) DeleteUser(ctx context.Context, username string) error {
	result, err := s.exec(ctx, "DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	s.logger.Info("deleted user", "username", username)
	return nil
}

// CountUsers returns the number of registered users.
func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.queryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
