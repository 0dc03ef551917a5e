// ABOUTME: HTTP handlers for the feedback-board web UI
// ABOUTME: Registration, login, profile, and feedback CRUD with session auth and CSRF

package web

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mahdimq/feedback-board/internal/auth"
	"github.com/mahdimq/feedback-board/internal/forms"
	"github.com/mahdimq/feedback-board/internal/store"
)

// CSRFCookieName is the name of the CSRF token cookie
const CSRFCookieName = "feedback_csrf"

// Server handles web UI routes. Every handler is a synchronous
// request-to-response transform over the store and session manager; the
// ordering is always validate, authorize, mutate, respond.
type Server struct {
	store    store.Store
	sessions *auth.Sessions
	logger   *slog.Logger
}

// New creates a new web server handler
func New(st store.Store, sessions *auth.Sessions) *Server {
	return &Server{
		store:    st,
		sessions: sessions,
		logger:   slog.Default().With("component", "web"),
	}
}

// Handler builds the route table and returns the root handler.
// Any path not registered here falls through to the 404 page.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /users/{username}", s.handleProfile)
	mux.HandleFunc("POST /users/{username}/delete", s.handleUserDelete)
	mux.HandleFunc("GET /users/{username}/feedback/add", s.handleFeedbackAddPage)
	mux.HandleFunc("POST /users/{username}/feedback/add", s.handleFeedbackAdd)
	mux.HandleFunc("GET /feedback/{id}/update", s.handleFeedbackUpdatePage)
	mux.HandleFunc("POST /feedback/{id}/update", s.handleFeedbackUpdate)
	mux.HandleFunc("POST /feedback/{id}/delete", s.handleFeedbackDelete)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Catch-all for unmatched paths
	mux.HandleFunc("/", s.handleNotFound)

	s.logger.Info("web routes registered")
	return mux
}

// ensureCSRFToken generates a CSRF token if not present and sets the cookie.
func (s *Server) ensureCSRFToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(CSRFCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token, err := generateSecureToken(32)
	if err != nil {
		s.logger.Error("failed to generate CSRF token", "error", err)
		token = "" // Will fail validation, but won't crash
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	return token
}

// validateCSRF checks the CSRF token from the form against the cookie.
func (s *Server) validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	formToken := r.FormValue("csrf_token")
	return formToken != "" && formToken == cookie.Value
}

// handleIndex redirects to the login page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleHealth is a liveness probe for the health subcommand
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleNotFound renders the 404 page for any unmatched path
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r)
}

// handleRegisterPage renders the registration form
func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	csrfToken := s.ensureCSRFToken(w, r)
	form := &forms.RegisterForm{Errors: forms.Errors{}}
	s.renderRegisterPage(w, r, form, csrfToken)
}

// handleRegister processes the registration form. The uniqueness violation
// is the only persistence failure caught here; it becomes a field error and
// the insert is not retried.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := forms.BindRegister(r)

	if !s.validateCSRF(r) {
		form.Errors.Add("form", "Invalid request, please try again")
		s.renderRegisterPage(w, r, form, csrfToken)
		return
	}

	if !form.Validate() {
		s.renderRegisterPage(w, r, form, csrfToken)
		return
	}

	user, err := auth.Register(form.Username, form.Password, form.Email, form.FirstName, form.LastName)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			form.Errors.Add("username", "Username taken, please pick another")
			s.renderRegisterPage(w, r, form, csrfToken)
		case errors.Is(err, store.ErrEmailExists):
			form.Errors.Add("email", "Email already in use, please pick another")
			s.renderRegisterPage(w, r, form, csrfToken)
		default:
			s.logger.Error("failed to create user", "error", err)
			http.Error(w, "An error occurred", http.StatusInternalServerError)
		}
		return
	}

	if err := s.sessions.SetIdentity(w, r, user.Username); err != nil {
		s.logger.Error("failed to create session", "error", err)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.logger.Info("user registered", "username", user.Username)
	s.setFlash(w, flashWarning, "Thank you for registering")
	http.Redirect(w, r, "/users/"+user.Username, http.StatusSeeOther)
}

// handleLoginPage renders the login form
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// Already authenticated users go straight to their profile
	if username, ok := s.sessions.Identity(r); ok {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := &forms.LoginForm{Errors: forms.Errors{}}
	s.renderLoginPage(w, r, form, csrfToken)
}

// handleLogin processes the login form
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if username, ok := s.sessions.Identity(r); ok {
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := forms.BindLogin(r)

	if !s.validateCSRF(r) {
		form.Errors.Add("form", "Invalid request, please try again")
		s.renderLoginPage(w, r, form, csrfToken)
		return
	}

	if !form.Validate() {
		s.renderLoginPage(w, r, form, csrfToken)
		return
	}

	user, err := auth.Authenticate(r.Context(), s.store, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same message whether the username or the password was wrong
			form.Errors.Add("username", "Invalid username/password.")
			s.renderLoginPage(w, r, form, csrfToken)
			return
		}
		s.logger.Error("failed to authenticate", "error", err)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	if err := s.sessions.SetIdentity(w, r, user.Username); err != nil {
		s.logger.Error("failed to create session", "error", err)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.logger.Info("login successful", "username", user.Username)
	s.setFlash(w, flashSuccess, "Welcome back "+user.FirstName+"!")
	http.Redirect(w, r, "/users/"+user.Username, http.StatusSeeOther)
}

// handleLogout clears the session and redirects home
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.ClearIdentity(w)
	s.setFlash(w, flashSuccess, "You have been logged out!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleProfile renders a user's profile with their feedback. The identity
// comparison happens before any store access; the existence lookup only
// runs for the authorized owner.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	identity, ok := s.sessions.Identity(r)
	if !ok || identity != username {
		s.setFlash(w, flashDanger, "You must be logged in to view this page")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.store.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to get user", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	feedback, err := s.store.ListUserFeedback(r.Context(), username)
	if err != nil {
		s.logger.Error("failed to list feedback", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	s.renderProfile(w, r, user, feedback, csrfToken)
}

// handleUserDelete deletes the user and all their feedback. Denials redirect
// back to the profile rather than the login page, matching the profile's own
// delete button flow.
func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	identity, ok := s.sessions.Identity(r)
	if !ok || identity != username {
		s.setFlash(w, flashPrimary, "You do not have permission to delete this user!")
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	if !s.validateCSRF(r) {
		s.setFlash(w, flashDanger, "Invalid request, please try again")
		http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteUser(r.Context(), username); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to delete user", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.sessions.ClearIdentity(w)
	s.logger.Info("user deleted", "username", username)
	s.setFlash(w, flashInfo, "User has been successfully deleted")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleFeedbackAddPage renders the add-feedback form
func (s *Server) handleFeedbackAddPage(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	identity, ok := s.sessions.Identity(r)
	if !ok || identity != username {
		s.setFlash(w, flashDanger, "Please login to leave feedback!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.store.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to get user", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := &forms.FeedbackForm{Errors: forms.Errors{}}
	s.renderFeedbackAddPage(w, r, user, form, csrfToken)
}

// handleFeedbackAdd creates a feedback entry owned by the path's user
func (s *Server) handleFeedbackAdd(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	identity, ok := s.sessions.Identity(r)
	if !ok || identity != username {
		s.setFlash(w, flashDanger, "Please login to leave feedback!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.store.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to get user", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := forms.BindFeedback(r)

	if !s.validateCSRF(r) {
		form.Errors.Add("form", "Invalid request, please try again")
		s.renderFeedbackAddPage(w, r, user, form, csrfToken)
		return
	}

	if !form.Validate() {
		s.renderFeedbackAddPage(w, r, user, form, csrfToken)
		return
	}

	fb := &store.Feedback{
		Title:    form.Title,
		Content:  form.Content,
		Username: username,
	}

	if err := s.store.CreateFeedback(r.Context(), fb); err != nil {
		s.logger.Error("failed to create feedback", "error", err, "username", username)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.setFlash(w, flashSuccess, "Feedback submitted!")
	http.Redirect(w, r, "/users/"+username, http.StatusSeeOther)
}

// loadFeedbackForOwner fetches the feedback entry and enforces the owner
// check. The existence lookup has to come first here: the owner isn't known
// until the row is loaded. Returns nil after writing the response when the
// request may not proceed.
func (s *Server) loadFeedbackForOwner(w http.ResponseWriter, r *http.Request, denyMsg string) *store.Feedback {
	id := r.PathValue("id")

	fb, err := s.store.GetFeedback(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrFeedbackNotFound) {
			s.renderNotFound(w, r)
			return nil
		}
		s.logger.Error("failed to get feedback", "error", err, "id", id)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return nil
	}

	identity, ok := s.sessions.Identity(r)
	if !ok || identity != fb.Username {
		s.setFlash(w, flashDanger, denyMsg)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil
	}

	return fb
}

// handleFeedbackUpdatePage renders the update form pre-filled with the entry
func (s *Server) handleFeedbackUpdatePage(w http.ResponseWriter, r *http.Request) {
	fb := s.loadFeedbackForOwner(w, r, "Please login to update your feedback!")
	if fb == nil {
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := &forms.FeedbackForm{
		Title:   fb.Title,
		Content: fb.Content,
		Errors:  forms.Errors{},
	}
	s.renderFeedbackUpdatePage(w, r, fb, form, csrfToken)
}

// handleFeedbackUpdate overwrites the title and content of an entry
func (s *Server) handleFeedbackUpdate(w http.ResponseWriter, r *http.Request) {
	fb := s.loadFeedbackForOwner(w, r, "Please login to update your feedback!")
	if fb == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	csrfToken := s.ensureCSRFToken(w, r)
	form := forms.BindFeedback(r)

	if !s.validateCSRF(r) {
		form.Errors.Add("form", "Invalid request, please try again")
		s.renderFeedbackUpdatePage(w, r, fb, form, csrfToken)
		return
	}

	if !form.Validate() {
		s.renderFeedbackUpdatePage(w, r, fb, form, csrfToken)
		return
	}

	fb.Title = form.Title
	fb.Content = form.Content

	if err := s.store.UpdateFeedback(r.Context(), fb); err != nil {
		if errors.Is(err, store.ErrFeedbackNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to update feedback", "error", err, "id", fb.ID)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.setFlash(w, flashInfo, "Feedback Updated!")
	http.Redirect(w, r, "/users/"+fb.Username, http.StatusSeeOther)
}

// handleFeedbackDelete removes a feedback entry
func (s *Server) handleFeedbackDelete(w http.ResponseWriter, r *http.Request) {
	fb := s.loadFeedbackForOwner(w, r, "Not allowed! You did not create this feedback")
	if fb == nil {
		return
	}

	if !s.validateCSRF(r) {
		s.setFlash(w, flashDanger, "Invalid request, please try again")
		http.Redirect(w, r, "/users/"+fb.Username, http.StatusSeeOther)
		return
	}

	if err := s.store.DeleteFeedback(r.Context(), fb.ID); err != nil {
		if errors.Is(err, store.ErrFeedbackNotFound) {
			s.renderNotFound(w, r)
			return
		}
		s.logger.Error("failed to delete feedback", "error", err, "id", fb.ID)
		http.Error(w, "An error occurred", http.StatusInternalServerError)
		return
	}

	s.setFlash(w, flashWarning, "Feedback Deleted!")
	http.Redirect(w, r, "/users/"+fb.Username, http.StatusSeeOther)
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
