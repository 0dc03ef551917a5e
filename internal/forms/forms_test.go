// ABOUTME: Tests for form binding and field validation
// ABOUTME: Covers required/length/email/username constraints and server-side error appending

package forms

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(values url.Values) *RegisterForm {
	req := httptest.NewRequest("POST", "/register", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return BindRegister(req)
}

func validRegisterValues() url.Values {
	return url.Values{
		"username":   {"whiskey"},
		"password":   {"hunter2hunter2"},
		"email":      {"w@example.com"},
		"first_name": {"Whiskey"},
		"last_name":  {"Lima"},
	}
}

func TestRegisterForm_Valid(t *testing.T) {
	form := postForm(validRegisterValues())

	require.True(t, form.Validate())
	assert.Empty(t, form.Errors)
	assert.Equal(t, "whiskey", form.Username)
}

func TestRegisterForm_MissingEverything(t *testing.T) {
	form := postForm(url.Values{})

	require.False(t, form.Validate())
	for _, field := range []string{"username", "password", "email", "first_name", "last_name"} {
		assert.NotEmpty(t, form.Errors[field], "expected an error for %s", field)
	}
}

func TestRegisterForm_UsernameTooShort(t *testing.T) {
	values := validRegisterValues()
	values.Set("username", "ab")
	form := postForm(values)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["username"])
}

func TestRegisterForm_UsernameTooLong(t *testing.T) {
	values := validRegisterValues()
	values.Set("username", strings.Repeat("a", 21))
	form := postForm(values)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["username"])
}

func TestRegisterForm_UsernameShape(t *testing.T) {
	cases := map[string]bool{
		"whiskey":   true,
		"Whiskey_7": true,
		"7whiskey":  false, // must start with a letter
		"_whiskey":  false,
		"whi skey":  false,
		"whi-skey":  false,
	}

	for username, want := range cases {
		values := validRegisterValues()
		values.Set("username", username)
		form := postForm(values)
		assert.Equal(t, want, form.Validate(), "username %q", username)
	}
}

func TestRegisterForm_BadEmail(t *testing.T) {
	values := validRegisterValues()
	values.Set("email", "not-an-email")
	form := postForm(values)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["email"])
}

func TestRegisterForm_ShortPassword(t *testing.T) {
	values := validRegisterValues()
	values.Set("password", "short")
	form := postForm(values)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["password"])
}

func TestRegisterForm_TrimsWhitespace(t *testing.T) {
	values := validRegisterValues()
	values.Set("username", "  whiskey  ")
	form := postForm(values)

	require.True(t, form.Validate())
	assert.Equal(t, "whiskey", form.Username)
}

func TestErrors_AddServerSideError(t *testing.T) {
	form := postForm(validRegisterValues())
	require.True(t, form.Validate())

	form.Errors.Add("username", "Username taken, please pick another")
	require.Len(t, form.Errors["username"], 1)
	assert.Equal(t, "Username taken, please pick another", form.Errors["username"][0])
}

func TestLoginForm_Required(t *testing.T) {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form := BindLogin(req)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["username"])
	assert.NotEmpty(t, form.Errors["password"])
}

func TestFeedbackForm_Valid(t *testing.T) {
	values := url.Values{"title": {"A note"}, "content": {"Some thoughts."}}
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form := BindFeedback(req)

	require.True(t, form.Validate())
}

func TestFeedbackForm_TitleTooLong(t *testing.T) {
	values := url.Values{"title": {strings.Repeat("x", 101)}, "content": {"body"}}
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form := BindFeedback(req)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["title"])
}

func TestFeedbackForm_EmptyContent(t *testing.T) {
	values := url.Values{"title": {"A note"}, "content": {""}}
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	form := BindFeedback(req)

	require.False(t, form.Validate())
	assert.NotEmpty(t, form.Errors["content"])
}
