package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func csrfCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	resp := rec.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFProtection_GetIssuesToken(t *testing.T) {
	var seen string
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetCSRFToken(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	cookie := csrfCookieFrom(t, rec)
	if cookie.Value == "" || cookie.Value != seen {
		t.Fatalf("context token %q does not match cookie %q", seen, cookie.Value)
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected SameSite=Strict, got %v", cookie.SameSite)
	}

	// An existing cookie is reused, not rotated.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "existing"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "existing" {
		t.Errorf("expected existing token, got %q", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie should not be re-issued")
	}
}

func TestCSRFProtection_Post(t *testing.T) {
	const token = "tok-123"
	form := func(v string) *strings.Reader {
		return strings.NewReader(url.Values{"csrf_token": {v}, "email": {"a@b.c"}}.Encode())
	}

	tests := []struct {
		name  string
		build func() *http.Request
		want  int
	}{
		{"no cookie no token", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/logout", nil)
		}, http.StatusForbidden},
		{"header token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, token)
			return r
		}, http.StatusOK},
		{"wrong header token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, "other")
			return r
		}, http.StatusForbidden},
		{"form token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/login", form(token))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			return r
		}, http.StatusOK},
		{"form token mismatch", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/login", form("forged"))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			return r
		}, http.StatusForbidden},
		{"same origin", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "http://127.0.0.1:8080/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, token)
			r.Header.Set("Origin", "http://127.0.0.1:8080")
			return r
		}, http.StatusOK},
		{"cross-site origin with valid token", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "http://127.0.0.1:8080/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, token)
			r.Header.Set("Origin", "https://evil.example")
			return r
		}, http.StatusForbidden},
		{"null origin", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, token)
			r.Header.Set("Origin", "null")
			return r
		}, http.StatusForbidden},
		{"sec-fetch-site cross-site", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/logout", nil)
			r.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
			r.Header.Set(DefaultCSRFHeaderName, token)
			r.Header.Set("Sec-Fetch-Site", "cross-site")
			return r
		}, http.StatusForbidden},
	}

	handler := CSRFProtection(CSRFConfig{})(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.build())
			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestIsForwardedHTTPS(t *testing.T) {
	for header, want := range map[string]bool{"": false, "http": false, "https": true, "http, HTTPS": true} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-Proto", header)
		if got := isForwardedHTTPS(r); got != want {
			t.Errorf("isForwardedHTTPS(%q) = %v, want %v", header, got, want)
		}
	}
}

func TestRouter_CSRFBlocksCrossSiteAdminAction(t *testing.T) {
	app := newTestApp(t)
	app.sessions.Restore(context.Background())
	app.login(t, "admin@blog.com", "admin123")
	h := CSRFProtection(CSRFConfig{})(app.router)

	// The session token is handed out through the layout.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var layout struct {
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))
	cookie := csrfCookieFrom(t, rec)
	assert.Equal(t, cookie.Value, layout.CSRFToken)

	// A forged form from another site never reaches the admin service.
	forged := httptest.NewRequest(http.MethodPost, "/admin/users/victim/delete", nil)
	forged.RemoteAddr = "192.168.1.77:5555"
	forged.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, forged)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Same for a post that omits the token entirely.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, app.sessions.Session().IsAuthenticated())

	app.api.EXPECT().DeleteUser(gomock.Any(), "victim").Return(nil)
	legit := httptest.NewRequest(http.MethodPost, "/admin/users/victim/delete",
		strings.NewReader(url.Values{"csrf_token": {layout.CSRFToken}}.Encode()))
	legit.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	legit.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, legit)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}
