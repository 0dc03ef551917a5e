// Package web provides the browser-facing interface for feedback-board.
//
// # Overview
//
// The web server renders server-side HTML pages for:
//
//   - Registration and login forms
//   - Per-user profile pages listing the user's feedback
//   - Add, update, and delete feedback flows
//   - A styled 404 page for unmatched routes
//
// # Routing
//
// Routes are registered on a net/http ServeMux with method and path
// patterns; handlers read path segments with r.PathValue. A catch-all "/"
// entry renders the 404 page for anything the table doesn't match.
//
// # Authorization
//
// Every handler follows the same ordering: validate, authorize, mutate,
// respond. Profile and add-feedback routes compare the session identity
// against the path's username before touching the store. Feedback update
// and delete routes load the entry first, because the owner isn't known
// until the row is read, then compare identities. Denials set a flash
// message and redirect rather than rendering an error page.
//
// # CSRF Protection
//
// Form submissions carry a hidden csrf_token field that must match the
// feedback_csrf cookie:
//
//	<input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
//
// # Flash Messages
//
// One-shot notices (e.g. "Feedback submitted!") travel across redirects in
// a cookie and are cleared on the next rendered page.
//
// # Templates
//
// Pages are html/template files embedded with //go:embed, all extending a
// shared base layout. Feedback content is written in markdown and converted
// to HTML with goldmark when the profile renders.
//
// # Usage
//
//	srv := web.New(store, sessions)
//	http.ListenAndServe(addr, srv.Handler())
package web
