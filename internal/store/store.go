// ABOUTME: Store interface and data types for feedback-board persistence
// ABOUTME: Defines User, Feedback structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrFeedbackNotFound is returned when a requested feedback entry does not exist.
var ErrFeedbackNotFound = errors.New("feedback not found")

// ErrUsernameExists is returned when trying to create a user with an existing username.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when trying to create a user with an existing email.
var ErrEmailExists = errors.New("email already exists")

// User represents a registered account. PasswordHash is a bcrypt hash;
// plaintext passwords are never persisted.
type User struct {
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}

// Feedback represents a short note owned by a single user. Username is a
// weak reference to the owning user; deleting the user deletes the feedback.
type Feedback struct {
	ID        string
	Title     string
	Content   string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store defines the interface for user and feedback persistence.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, username string) (*User, error)
	DeleteUser(ctx context.Context, username string) error
	CountUsers(ctx context.Context) (int, error)

	// Feedback
	CreateFeedback(ctx context.Context, fb *Feedback) error
	GetFeedback(ctx context.Context, id string) (*Feedback, error)
	UpdateFeedback(ctx context.Context, fb *Feedback) error
	DeleteFeedback(ctx context.Context, id string) error
	ListUserFeedback(ctx context.Context, username string) ([]*Feedback, error)

	// Close releases any resources held by the store
	Close() error
}
