// ABOUTME: Tests for registration hashing and login verification
// ABOUTME: Checks that unknown-user and wrong-password failures are indistinguishable

package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahdimq/feedback-board/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRegister_HashesPassword(t *testing.T) {
	user, err := Register("whiskey", "hunter2hunter2", "w@example.com", "Whiskey", "Lima")
	require.NoError(t, err)

	assert.Equal(t, "whiskey", user.Username)
	assert.Equal(t, "w@example.com", user.Email)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
}

func TestRegister_ReturnsUnsavedRecord(t *testing.T) {
	s := newTestStore(t)

	user, err := Register("whiskey", "hunter2hunter2", "w@example.com", "Whiskey", "Lima")
	require.NoError(t, err)

	// Register does not persist; the store must not know the user yet
	_, err = s.GetUser(context.Background(), user.Username)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAuthenticate_Success(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := Register("whiskey", "hunter2hunter2", "w@example.com", "Whiskey", "Lima")
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := Authenticate(ctx, s, "whiskey", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "whiskey", got.Username)
	assert.Equal(t, "Whiskey", got.FirstName)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := Register("whiskey", "hunter2hunter2", "w@example.com", "Whiskey", "Lima")
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, user))

	_, err = Authenticate(ctx, s, "whiskey", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s := newTestStore(t)

	_, err := Authenticate(context.Background(), s, "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_FailuresIndistinguishable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := Register("whiskey", "hunter2hunter2", "w@example.com", "Whiskey", "Lima")
	require.NoError(t, err)
	require.NoError(t, s.CreateUser(ctx, user))

	_, errWrongPass := Authenticate(ctx, s, "whiskey", "wrong-password")
	_, errUnknown := Authenticate(ctx, s, "ghost", "wrong-password")

	// Same sentinel, same message: callers can't tell which part was wrong
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}
