// ABOUTME: Template rendering functions for the feedback-board pages
// ABOUTME: Loads templates from the embedded filesystem and renders them

package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/mahdimq/feedback-board/internal/forms"
	"github.com/mahdimq/feedback-board/internal/store"
)

// Template data types
type registerData struct {
	Title     string
	Flash     *Flash
	Form      *forms.RegisterForm
	CSRFToken string
}

type loginData struct {
	Title     string
	Flash     *Flash
	Form      *forms.LoginForm
	CSRFToken string
}

type feedbackItem struct {
	ID      string
	Title   string
	Content template.HTML
}

type profileData struct {
	Title     string
	Flash     *Flash
	User      *store.User
	Feedback  []feedbackItem
	CSRFToken string
}

type feedbackFormData struct {
	Title     string
	Flash     *Flash
	Heading   string
	Action    string
	Form      *forms.FeedbackForm
	CSRFToken string
}

type notFoundData struct {
	Title string
	Flash *Flash
}

// renderRegisterPage renders the registration form
func (s *Server) renderRegisterPage(w http.ResponseWriter, r *http.Request, form *forms.RegisterForm, csrfToken string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/register.html"))

	data := registerData{
		Title:     "Register",
		Flash:     s.popFlash(w, r),
		Form:      form,
		CSRFToken: csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render register page", "error", err)
	}
}

// renderLoginPage renders the login form
func (s *Server) renderLoginPage(w http.ResponseWriter, r *http.Request, form *forms.LoginForm, csrfToken string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/login.html"))

	data := loginData{
		Title:     "Login",
		Flash:     s.popFlash(w, r),
		Form:      form,
		CSRFToken: csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render login page", "error", err)
	}
}

// renderProfile renders a user's profile with their feedback entries.
// Feedback content is written in markdown and converted to HTML here.
func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, user *store.User, feedback []*store.Feedback, csrfToken string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/profile.html"))

	items := make([]feedbackItem, 0, len(feedback))
	for _, fb := range feedback {
		items = append(items, feedbackItem{
			ID:      fb.ID,
			Title:   fb.Title,
			Content: markdownToHTML(fb.Content),
		})
	}

	data := profileData{
		Title:     user.FirstName + " " + user.LastName,
		Flash:     s.popFlash(w, r),
		User:      user,
		Feedback:  items,
		CSRFToken: csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render profile", "error", err)
	}
}

// renderFeedbackAddPage renders the add-feedback form
func (s *Server) renderFeedbackAddPage(w http.ResponseWriter, r *http.Request, user *store.User, form *forms.FeedbackForm, csrfToken string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/feedback_form.html"))

	data := feedbackFormData{
		Title:     "Add Feedback",
		Flash:     s.popFlash(w, r),
		Heading:   "Add feedback for " + user.FirstName,
		Action:    "/users/" + user.Username + "/feedback/add",
		Form:      form,
		CSRFToken: csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render feedback form", "error", err)
	}
}

// renderFeedbackUpdatePage renders the update form pre-filled with the entry
func (s *Server) renderFeedbackUpdatePage(w http.ResponseWriter, r *http.Request, fb *store.Feedback, form *forms.FeedbackForm, csrfToken string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/feedback_form.html"))

	data := feedbackFormData{
		Title:     "Update Feedback",
		Flash:     s.popFlash(w, r),
		Heading:   "Update feedback",
		Action:    "/feedback/" + fb.ID + "/update",
		Form:      form,
		CSRFToken: csrfToken,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render feedback form", "error", err)
	}
}

// renderNotFound renders the 404 page with a 404 status code
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/error.html"))

	data := notFoundData{
		Title: "Page Not Found",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render 404 page", "error", err)
	}
}

// markdownToHTML converts markdown content to HTML for display
func markdownToHTML(content string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		// Fall back to the raw text, escaped by the template engine upstream
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}
