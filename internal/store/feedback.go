// ABOUTME: Feedback store methods for the SQLite backend
// ABOUTME: Covers CRUD plus per-user listing; IDs are assigned on insert

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateFeedback persists a new feedback entry. If fb.ID is empty a UUID is
// assigned. The username must reference an existing user; the foreign key
// rejects orphan rows.
func (s *SQLiteStore) CreateFeedback(ctx context.Context, fb *Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = now
	}
	if fb.UpdatedAt.IsZero() {
		fb.UpdatedAt = fb.CreatedAt
	}

	query := `
		INSERT INTO feedback (id, title, content, username, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.exec(ctx, query,
		fb.ID,
		fb.Title,
		fb.Content,
		fb.Username,
		fb.CreatedAt.UTC().Format(time.RFC3339),
		fb.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}

	s.logger.Debug("created feedback", "id", fb.ID, "username", fb.Username)
	return nil
}

// GetFeedback retrieves a feedback entry by ID.
func (s *SQLiteStore) GetFeedback(ctx context.Context, id string) (*Feedback, error) {
	query := `
		SELECT id, title, content, username, created_at, updated_at
		FROM feedback
		WHERE id = ?
	`

	fb, err := scanFeedback(s.queryRow(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}

	return fb, nil
}

// UpdateFeedback overwrites the title and content of an existing entry.
// Ownership never changes.
func (s *SQLiteStore) UpdateFeedback(ctx context.Context, fb *Feedback) error {
	fb.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE feedback
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.exec(ctx, query,
		fb.Title,
		fb.Content,
		fb.UpdatedAt.Format(time.RFC3339),
		fb.ID,
	)
	if err != nil {
		return fmt.Errorf("updating feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	s.logger.Debug("updated feedback", "id", fb.ID)
	return nil
}

// DeleteFeedback removes a single feedback entry.
func (s *SQLiteStore) DeleteFeedback(ctx context.Context, id string) error {
	result, err := s.exec(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting feedback: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	s.logger.Debug("deleted feedback", "id", id)
	return nil
}

// ListUserFeedback returns all feedback owned by a user, oldest first.
func (s *SQLiteStore) ListUserFeedback(ctx context.Context, username string) ([]*Feedback, error) {
	query := `
		SELECT id, title, content, username, created_at, updated_at
		FROM feedback
		WHERE username = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("querying feedback list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		entries = append(entries, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}

	return entries, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row rowScanner) (*Feedback, error) {
	var fb Feedback
	var createdAtStr, updatedAtStr string

	if err := row.Scan(
		&fb.ID,
		&fb.Title,
		&fb.Content,
		&fb.Username,
		&createdAtStr,
		&updatedAtStr,
	); err != nil {
		return nil, err
	}

	var err error
	fb.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	fb.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &fb, nil
}
