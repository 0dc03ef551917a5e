// Package auth provides credential handling and browser sessions for
// feedback-board.
//
// # Credentials
//
// Passwords are hashed with bcrypt at the default cost. Register builds an
// unsaved user record from submitted fields; Authenticate verifies a
// username/password pair against the store.
//
// Authentication failures are indistinguishable by design: an unknown
// username and a wrong password both return ErrInvalidCredentials, and the
// unknown-username path still runs a bcrypt comparison against a dummy hash
// so the two cases take comparable time.
//
// # Sessions
//
// A session is a signed cookie, not a server-side record. The cookie value
// is an HS256 JWT whose "sub" claim carries the authenticated username and
// nothing else. Sessions last seven days.
//
//	sessions := auth.NewSessions([]byte(secret))
//	sessions.SetIdentity(w, r, username)   // issue the cookie
//	username, ok := sessions.Identity(r)   // read it back
//	sessions.ClearIdentity(w)              // expire it
//
// A missing, tampered, or expired cookie simply reads as no identity;
// handlers never see the distinction.
package auth
