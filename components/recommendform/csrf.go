package recommendform

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-movieform/pkg/render"
)

// CSRF protects form posts with a double-submit token: the page carries the
// token in a hidden field and in a cookie, and a post must echo the cookie.
type CSRF struct {
	FieldName  string
	CookieName string
	// Path scopes the cookie. Defaults to "/".
	Path string
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// NewCSRF returns a CSRF using the "_csrf" field and "movieform_csrf" cookie.
func NewCSRF() CSRF {
	return CSRF{FieldName: "_csrf", CookieName: "movieform_csrf", Path: "/"}
}

var errCSRFToken = errors.New("recommendform: missing or invalid csrf token")

// HiddenFields is a HiddenFieldsFunc. It reuses the request's token cookie
// or issues a new one.
func (c CSRF) HiddenFields(w http.ResponseWriter, r *http.Request) map[string]string {
	token := c.cookieToken(r)
	if token == "" {
		token = uuid.NewString()
		path := c.Path
		if path == "" {
			path = "/"
		}
		http.SetCookie(w, &http.Cookie{
			Name:     c.CookieName,
			Value:    token,
			Path:     path,
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
	return render.MergeHiddenFields(nil, render.CSRFToken(c.FieldName, token))
}

// Guard is a GuardFunc rejecting posts whose token field does not match the
// cookie. Other methods pass.
func (c CSRF) Guard(r *http.Request) error {
	if r.Method != http.MethodPost {
		return nil
	}
	want := c.cookieToken(r)
	got := strings.TrimSpace(r.PostForm.Get(c.FieldName))
	if want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return StatusError{Code: http.StatusForbidden, Err: errCSRFToken}
	}
	return nil
}

func (c CSRF) cookieToken(r *http.Request) string {
	cookie, err := r.Cookie(c.CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
