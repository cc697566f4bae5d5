package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/model"
	"github.com/iliyamo/soulful-cms/internal/utils"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// sessionClaims extracts and verifies the session cookie. The returned
// claims are trusted only because the signature check passed.
func sessionClaims(c echo.Context, secret string) (*utils.Claims, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	claims, err := utils.VerifyToken(secret, cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// SessionAuth returns an Echo middleware that guards the admin API. It reads
// the session token from the cookie, verifies it and requires the ADMIN role.
// On success the subject id, role and full claim set are stored in the
// request context under "user_id", "role" and "claims". The check is pure and
// re-evaluated on every request; there is no server-side session store.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := sessionClaims(c, secret)
			if !ok || claims.Role != model.RoleAdmin {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
			}
			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("claims", claims)
			return next(c)
		}
	}
}

// PageGuard returns an Echo middleware for browser-facing admin pages. An
// unauthenticated or unauthorized request is redirected to the login page
// instead of receiving a JSON error. The login page itself always passes so
// the guard never loops it through auth.
func PageGuard(secret, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// exact match or a child path; /admin/login-old must not slip by
			path := c.Request().URL.Path
			if path == loginPath || strings.HasPrefix(path, loginPath+"/") {
				return next(c)
			}
			claims, ok := sessionClaims(c, secret)
			if !ok || claims.Role != model.RoleAdmin {
				return c.Redirect(http.StatusFound, loginPath)
			}
			return next(c)
		}
	}
}
