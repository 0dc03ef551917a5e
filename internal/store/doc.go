// Package store provides persistent storage for feedback-board using SQLite.
//
// # Architecture
//
// The package exposes a single Store interface covering both entity
// families:
//
//   - User operations: create, fetch, delete, count
//   - Feedback operations: create, fetch, update, delete, list per user
//
// SQLiteStore implements the interface over database/sql with the pure-Go
// modernc.org/sqlite driver, so the binary builds without cgo.
//
// # Data Models
//
//   - User: keyed by username, carries the bcrypt password hash, a unique
//     email, and display names
//   - Feedback: keyed by a UUID assigned on insert, owned by exactly one
//     user via a foreign key
//
// Timestamps are stored as RFC3339 strings in UTC.
//
// # Referential Integrity
//
// The feedback table declares ON DELETE CASCADE on its username foreign
// key, and the store enables PRAGMA foreign_keys on every connection.
// Deleting a user removes all their feedback in the same statement;
// inserting feedback for an unknown user fails.
//
// # Errors
//
// Lookup and mutation failures map to sentinel errors so callers can
// branch with errors.Is:
//
//   - ErrUserNotFound, ErrFeedbackNotFound
//   - ErrUsernameExists, ErrEmailExists (unique constraint violations,
//     classified by the violated column)
//
// # Query Echo
//
// SetEchoQueries(true) logs every executed statement at debug level,
// useful when tracing handler behavior during development.
package store
