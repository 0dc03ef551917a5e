// ABOUTME: One-shot flash messages carried across a redirect in a cookie
// ABOUTME: Written before the redirect, read and cleared on the next render

package web

import (
	"net/http"
	"net/url"
	"strings"
)

// flashCookieName is the name of the flash cookie
const flashCookieName = "feedback_flash"

// Flash categories map onto the stylesheet's alert classes.
const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
	flashPrimary = "primary"
)

// Flash is a transient message shown once on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// setFlash stores a flash message for the next page render.
func (s *Server) setFlash(w http.ResponseWriter, category, message string) {
	value := url.QueryEscape(category) + "|" + url.QueryEscape(message)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending flash message, if any.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Clear it; flashes show exactly once
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	category, message, found := strings.Cut(cookie.Value, "|")
	if !found {
		return nil
	}

	cat, err1 := url.QueryUnescape(category)
	msg, err2 := url.QueryUnescape(message)
	if err1 != nil || err2 != nil || msg == "" {
		return nil
	}

	return &Flash{Category: cat, Message: msg}
}
