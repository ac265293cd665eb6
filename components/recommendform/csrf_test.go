package recommendform

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

func newCSRFHandler(t *testing.T, stub *stubRecommender) http.Handler {
	t.Helper()
	csrf := NewCSRF()
	return newHandler(t, stub, WithHiddenFields(csrf.HiddenFields), WithGuard(csrf.Guard))
}

func issueToken(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "movieform_csrf" || cookies[0].Value == "" {
		t.Fatalf("expected csrf cookie, got %#v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteStrictMode {
		t.Fatalf("unexpected cookie attributes %#v", cookies[0])
	}

	field, _ := parse(t, rec.Body.String()).Find(`input[type="hidden"][name="_csrf"]`).Attr("value")
	if field != cookies[0].Value {
		t.Fatalf("hidden field %q does not match cookie %q", field, cookies[0].Value)
	}
	return cookies[0]
}

func postWithToken(h http.Handler, cookie *http.Cookie, token string) *httptest.ResponseRecorder {
	form := validForm()
	if token != "" {
		form.Set("_csrf", token)
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(vanilla.FragmentHeader, "1")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCSRF_MatchingTokenIsServed(t *testing.T) {
	stub := &stubRecommender{response: model.Response{Success: true}}
	h := newCSRFHandler(t, stub)
	cookie := issueToken(t, h)

	rec := postWithToken(h, cookie, cookie.Value)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(stub.queries) != 1 {
		t.Fatalf("expected one recommender call, got %d", len(stub.queries))
	}
}

func TestCSRF_RejectsMissingOrForeignToken(t *testing.T) {
	cases := []struct {
		name   string
		cookie bool
		token  string
	}{
		{name: "no cookie", token: "forged"},
		{name: "no field", cookie: true},
		{name: "mismatch", cookie: true, token: "forged"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubRecommender{response: model.Response{Success: true}}
			h := newCSRFHandler(t, stub)

			var cookie *http.Cookie
			if tc.cookie {
				cookie = issueToken(t, h)
			}
			rec := postWithToken(h, cookie, tc.token)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected status 403, got %d", rec.Code)
			}
			if len(stub.queries) != 0 {
				t.Fatalf("rejected posts must not reach the recommender")
			}
		})
	}
}

func TestCSRF_ReusesExistingCookie(t *testing.T) {
	h := newCSRFHandler(t, &stubRecommender{})
	cookie := issueToken(t, h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Result().Cookies(); len(got) != 0 {
		t.Fatalf("expected no new cookie, got %#v", got)
	}
	field, _ := parse(t, rec.Body.String()).Find(`input[type="hidden"][name="_csrf"]`).Attr("value")
	if field != cookie.Value {
		t.Fatalf("expected existing token %q, got %q", cookie.Value, field)
	}
}
