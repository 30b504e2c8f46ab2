package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
)

type TimeService interface {
	ListTimes(ctx context.Context) ([]model.ReservationTime, error)
	AddTime(ctx context.Context, startAt model.TimeOfDay) (model.ReservationTime, error)
	DeleteTime(ctx context.Context, id int64) error
	AvailableTimes(ctx context.Context, date time.Time, themeID int64) ([]service.AvailableTime, error)
}

type TimeHandler struct {
	svc TimeService
}

func NewTimeHandler(svc TimeService) *TimeHandler {
	return &TimeHandler{svc: svc}
}

func (h *TimeHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	ts, err := h.svc.ListTimes(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(ts, toTimeResp))
}

func (h *TimeHandler) Create(c echo.Context) error {
	var req timeReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	startAt, err := model.ParseTimeOfDay(req.StartAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_at must match 15:04")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rt, err := h.svc.AddTime(ctx, startAt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTimeResp(rt))
}

func (h *TimeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteTime(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Available lists every time slot with whether it is taken for the given
// date and theme: GET /v1/times/available?date=2025-01-01&theme_id=1
func (h *TimeHandler) Available(c echo.Context) error {
	var q availableQuery
	if err := bindValid(c, &q); err != nil {
		return err
	}
	day, err := model.ParseDate(q.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must match 2006-01-02")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	ts, err := h.svc.AvailableTimes(ctx, day, q.ThemeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(ts, toAvailableResp))
}
