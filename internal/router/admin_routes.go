package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/handler"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// AdminHandlers groups the handlers mounted under /v1/admin.
type AdminHandlers struct {
	Reservations *handler.ReservationHandler
	Times        *handler.TimeHandler
	Themes       *handler.ThemeHandler
	Auth         *handler.AuthHandler
}

// RegisterAdmin registers management endpoints under /v1/admin.  Every
// route requires a valid JWT with the ADMIN role.
func RegisterAdmin(e *echo.Echo, h AdminHandlers, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.GET("/reservations", h.Reservations.List)
	g.POST("/reservations", h.Reservations.AdminCreate)
	g.DELETE("/reservations/:id", h.Reservations.Delete)

	g.GET("/times", h.Times.List)
	g.POST("/times", h.Times.Create)
	g.DELETE("/times/:id", h.Times.Delete)

	g.GET("/themes", h.Themes.List)
	g.POST("/themes", h.Themes.Create)
	g.DELETE("/themes/:id", h.Themes.Delete)

	g.GET("/members", h.Auth.Members)
}
