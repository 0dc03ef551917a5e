// ABOUTME: Typed form structs and field validation for the web handlers
// ABOUTME: Wraps go-playground/validator, translating tag failures into per-field messages

package forms

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors maps a form field name to its accumulated error messages.
type Errors map[string][]string

// Add appends a message to a field's error list. Used by handlers to attach
// server-side failures (e.g. duplicate username) after validation passed.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// RegisterForm holds the registration fields.
type RegisterForm struct {
	Username  string `validate:"required,min=3,max=20,username"`
	Password  string `validate:"required,min=8,max=72"`
	Email     string `validate:"required,email,max=50"`
	FirstName string `validate:"required,max=30"`
	LastName  string `validate:"required,max=30"`

	Errors Errors
}

// LoginForm holds the login fields.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`

	Errors Errors
}

// FeedbackForm holds the fields shared by the add and update feedback pages.
type FeedbackForm struct {
	Title   string `validate:"required,max=100"`
	Content string `validate:"required"`

	Errors Errors
}

func init() {
	// Usernames start with a letter and contain only letters, digits, and
	// underscores. Registered as a tag so it reads like the builtin rules.
	must(validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return true // required handles empties
		}
		if !isLetter(rune(v[0])) {
			return false
		}
		for _, r := range v {
			if !isLetter(r) && (r < '0' || r > '9') && r != '_' {
				return false
			}
		}
		return true
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// BindRegister populates a RegisterForm from submitted form values.
func BindRegister(r *http.Request) *RegisterForm {
	return &RegisterForm{
		Username:  strings.TrimSpace(r.FormValue("username")),
		Password:  r.FormValue("password"),
		Email:     strings.TrimSpace(r.FormValue("email")),
		FirstName: strings.TrimSpace(r.FormValue("first_name")),
		LastName:  strings.TrimSpace(r.FormValue("last_name")),
		Errors:    Errors{},
	}
}

// BindLogin populates a LoginForm from submitted form values.
func BindLogin(r *http.Request) *LoginForm {
	return &LoginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
		Errors:   Errors{},
	}
}

// BindFeedback populates a FeedbackForm from submitted form values.
func BindFeedback(r *http.Request) *FeedbackForm {
	return &FeedbackForm{
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: r.FormValue("content"),
		Errors:  Errors{},
	}
}

// Validate runs the tag constraints and records failures per field.
// Returns true when the form is clean.
func (f *RegisterForm) Validate() bool { return runValidation(f, f.Errors) }

// Validate runs the tag constraints and records failures per field.
func (f *LoginForm) Validate() bool { return runValidation(f, f.Errors) }

// Validate runs the tag constraints and records failures per field.
func (f *FeedbackForm) Validate() bool { return runValidation(f, f.Errors) }

func runValidation(form any, errs Errors) bool {
	err := validate.Struct(form)
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.Add("form", "invalid submission")
		return false
	}

	for _, fe := range ve {
		errs.Add(formField(fe.Field()), fieldMessage(fe))
	}
	return false
}

// formField maps a struct field name to its HTML form field name.
func formField(name string) string {
	switch name {
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	default:
		return strings.ToLower(name)
	}
}

// fieldMessage converts a single validation failure into a user-facing message.
func fieldMessage(fe validator.FieldError) string {
	field := formField(fe.Field())
	label := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		return "The " + label + " must be at least " + fe.Param() + " characters."
	case "max":
		return "The " + label + " must be at most " + fe.Param() + " characters."
	case "username":
		return "Usernames must start with a letter and contain only letters, numbers, and underscores."
	default:
		return "The " + label + " is invalid."
	}
}
