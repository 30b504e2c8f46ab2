package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/utils"
)

// TokenCookie is the cookie the login handler stores the access token in.
const TokenCookie = "token"

// JWTAuth returns an Echo middleware that validates an access token and
// injects the member id, name and role into the request context.  The token
// is read from a Bearer Authorization header, or from the token cookie when
// no header is sent.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := tokenFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			id, _ := claims.MemberID() // validated by ParseAccessToken

			c.Set(ctxMemberID, id)
			c.Set(ctxMemberName, claims.Name)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) (string, bool) {
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		if !strings.HasPrefix(auth, "Bearer ") {
			return "", false
		}
		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		return raw, raw != ""
	}
	if ck, err := c.Cookie(TokenCookie); err == nil && ck.Value != "" {
		return ck.Value, true
	}
	return "", false
}
