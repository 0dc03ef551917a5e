// Package forms defines the typed form structs behind the web UI pages and
// validates them with go-playground/validator.
//
// Each form binds from an *http.Request, validates against its struct tags,
// and accumulates user-facing messages in a per-field Errors map. Handlers
// append their own entries (duplicate username, CSRF failure) to the same
// map so templates render every problem in one place.
package forms
