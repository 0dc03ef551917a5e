// ABOUTME: Credential handling for feedback-board accounts
// ABOUTME: bcrypt password hashing on registration and verification on login

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mahdimq/feedback-board/internal/store"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords. The two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the username doesn't exist, keeping
// login timing flat so valid usernames can't be enumerated.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register hashes the plaintext password and returns an unsaved User record.
// Persisting it is the caller's responsibility, so uniqueness violations can
// be caught at commit time and turned into field errors.
func Register(username, password, email, firstName, lastName string) (*store.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return &store.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Authenticate looks up the user by username and verifies the password
// against the stored hash. Returns ErrInvalidCredentials on any mismatch;
// unexpected store failures are passed through.
func Authenticate(ctx context.Context, s store.Store, username, password string) (*store.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a bcrypt comparison anyway to maintain constant timing
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
