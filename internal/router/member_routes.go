package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/handler"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// RegisterMember registers booking endpoints under /v1.  All routes
// require a valid JWT for a USER or ADMIN member.  Booking is rate limited
// per member when limiter is non-nil.
func RegisterMember(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)
	g.GET("/reservations", h.List)

	create := []echo.MiddlewareFunc{}
	if limiter != nil {
		create = append(create, limiter)
	}
	g.POST("/reservations", h.Create, create...)
}
