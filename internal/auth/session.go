// ABOUTME: Browser session management backed by a signed cookie
// ABOUTME: Uses HS256 JWTs carrying a single username claim

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "feedback_session"

// SessionDuration is how long a session stays valid.
const SessionDuration = 7 * 24 * time.Hour

// Session errors
var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrExpiredSession = errors.New("session expired")
	ErrMissingClaim   = errors.New("missing required claim")
)

// Sessions signs and verifies session cookies. The cookie value is an HS256
// JWT whose "sub" claim carries the authenticated username and nothing else.
type Sessions struct {
	secret []byte
}

// NewSessions creates a session manager signing with the given secret.
func NewSessions(secret []byte) *Sessions {
	return &Sessions{secret: secret}
}

// SetIdentity issues a session cookie for the given username.
func (s *Sessions) SetIdentity(w http.ResponseWriter, r *http.Request, username string) error {
	token, err := s.generate(username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(SessionDuration),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Identity returns the username claimed by the request's session cookie.
// A missing, expired, or badly signed cookie reads as no identity.
func (s *Sessions) Identity(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	username, err := s.verify(cookie.Value)
	if err != nil {
		return "", false
	}

	return username, true
}

// ClearIdentity expires the session cookie.
func (s *Sessions) ClearIdentity(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// generate creates a signed session token for the username.
func (s *Sessions) generate(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(SessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// verify validates the token and extracts the username from the "sub" claim.
func (s *Sessions) verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredSession
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if !token.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	return sub, nil
}
