package router // package router defines how HTTP routes are registered for the API

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/handler"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
)

// RegisterRoutes registers the operational endpoints: /healthz for load
// balancers and /metrics for Prometheus.  A nil metrics handler leaves
// /metrics unregistered.
func RegisterRoutes(e *echo.Echo, db handler.Pinger, log *slog.Logger, metrics http.Handler) {
	e.GET("/healthz", handler.Health(db, log))
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}
}

// RegisterAuth registers the account endpoints.  Register, login and logout
// need no session; /v1/auth/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout only clears the cookie, so an expired token may still call it.
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic registers the browse endpoints guests use to pick a
// theme and a free slot.
func RegisterPublic(e *echo.Echo, themes *handler.ThemeHandler, times *handler.TimeHandler) {
	e.GET("/v1/themes", themes.List)
	// Most booked themes over the recent window.
	e.GET("/v1/themes/popular", themes.Popular)
	e.GET("/v1/times", times.List)
	// ?date=2006-01-02&theme_id=N
	e.GET("/v1/times/available", times.Available)
}
