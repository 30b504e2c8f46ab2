package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

type ThemeService interface {
	ListThemes(ctx context.Context) ([]model.Theme, error)
	AddTheme(ctx context.Context, t model.Theme) (model.Theme, error)
	DeleteTheme(ctx context.Context, id int64) error
	PopularThemes(ctx context.Context) ([]model.Theme, error)
}

type ThemeHandler struct {
	svc ThemeService
}

func NewThemeHandler(svc ThemeService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

func (h *ThemeHandler) List(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	ts, err := h.svc.ListThemes(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(ts, toThemeResp))
}

// Popular returns the most booked themes of the recent window.
func (h *ThemeHandler) Popular(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	ts, err := h.svc.PopularThemes(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(ts, toThemeResp))
}

func (h *ThemeHandler) Create(c echo.Context) error {
	var req themeReq
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	th, err := h.svc.AddTheme(ctx, model.Theme{
		Name:        req.Name,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toThemeResp(th))
}

func (h *ThemeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteTheme(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
