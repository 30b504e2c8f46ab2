package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
)

type ReservationService interface {
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	AddReservation(ctx context.Context, in service.AddReservationInput) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

// ReservationHandler serves member bookings and admin reservation management.
type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

// List returns every reservation ordered by id.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	rs, err := h.svc.ListReservations(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(rs, toReservationResp))
}

// Create books a slot in the name of the authenticated member.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req reservationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	name := middleware.MemberName(c)
	if name == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return h.create(c, name, req)
}

// AdminCreate books a slot for an explicit name.
func (h *ReservationHandler) AdminCreate(c echo.Context) error {
	var req adminReservationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	return h.create(c, req.Name, req.reservationReq)
}

func (h *ReservationHandler) create(c echo.Context, name string, req reservationReq) error {
	day, err := model.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match 2006-01-02")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	r, err := h.svc.AddReservation(ctx, service.AddReservationInput{
		Name:    name,
		Date:    day,
		TimeID:  req.TimeID,
		ThemeID: req.ThemeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReservationResp(r))
}

// Delete cancels a reservation by id.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteReservation(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
