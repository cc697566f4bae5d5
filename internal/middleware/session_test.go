package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func doRequest(t *testing.T, mw echo.MiddlewareFunc, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

func TestSessionAuth_NoCookie(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, SessionAuth(testSecret), "/api/admin/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, SessionAuth(testSecret), "/api/admin/me", "garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSessionAuth_WrongRole(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, "u1", "USER", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rec := doRequest(t, SessionAuth(testSecret), "/api/admin/me", tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-admin role, got %d", rec.Code)
	}
}

func TestSessionAuth_Admin(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, "u1", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotID, gotRole string
	h := SessionAuth(testSecret)(func(c echo.Context) error {
		gotID, _ = c.Get("user_id").(string)
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "u1" || gotRole != "ADMIN" {
		t.Fatalf("claims not stored in context: id=%q role=%q", gotID, gotRole)
	}
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, "u1", "ADMIN", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rec := doRequest(t, SessionAuth(testSecret), "/api/admin/me", tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestPageGuard_LoginPageAlwaysPasses(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, PageGuard(testSecret, "/admin/login"), "/admin/login", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login page must bypass the guard, got %d", rec.Code)
	}
}

func TestPageGuard_LoginAssetsPass(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, PageGuard(testSecret, "/admin/login"), "/admin/login/index.html", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login page assets must bypass the guard, got %d", rec.Code)
	}
}

func TestPageGuard_SimilarPrefixStillGuarded(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, PageGuard(testSecret, "/admin/login"), "/admin/login-old", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 for a non-login path sharing the prefix, got %d", rec.Code)
	}
}

func TestPageGuard_RedirectsWithoutSession(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, PageGuard(testSecret, "/admin/login"), "/admin/dashboard", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestPageGuard_AdminPasses(t *testing.T) {
	t.Parallel()

	tok, err := utils.IssueToken(testSecret, "u1", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	rec := doRequest(t, PageGuard(testSecret, "/admin/login"), "/admin/dashboard", tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin session, got %d", rec.Code)
	}
}
