package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/roomescape-reservation/internal/metrics"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
	"github.com/iliyamo/roomescape-reservation/internal/utils"
)

const testSecret = "server-test-secret"

type themeStub struct {
	themes []model.Theme
	err    error
}

func (s themeStub) ListThemes(ctx context.Context) ([]model.Theme, error) { return s.themes, s.err }
func (s themeStub) AddTheme(ctx context.Context, t model.Theme) (model.Theme, error) {
	return t, s.err
}
func (s themeStub) DeleteTheme(ctx context.Context, id int64) error { return s.err }
func (s themeStub) PopularThemes(ctx context.Context) ([]model.Theme, error) {
	return s.themes, s.err
}

type reservationStub struct {
	added []service.AddReservationInput
	err   error
}

func (s *reservationStub) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return nil, s.err
}
func (s *reservationStub) AddReservation(ctx context.Context, in service.AddReservationInput) (model.Reservation, error) {
	if s.err != nil {
		return model.Reservation{}, s.err
	}
	s.added = append(s.added, in)
	return model.Reservation{
		ID:    1,
		Name:  in.Name,
		Date:  in.Date,
		Time:  model.ReservationTime{ID: in.TimeID, StartAt: model.MustTimeOfDay("12:25")},
		Theme: model.Theme{ID: in.ThemeID, Name: "level2"},
	}, nil
}
func (s *reservationStub) DeleteReservation(ctx context.Context, id int64) error { return s.err }

func testServer(svc services) *echo.Echo {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newServer(log, testSecret, false, nil, metrics.New(), nil, svc)
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestNewServer_OperationalRoutes(t *testing.T) {
	e := testServer(services{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServer_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"domain", fmt.Errorf("service.ThemeService.ListThemes: %w", service.ErrThemeNotFound), http.StatusBadRequest, service.ErrThemeNotFound.Error()},
		{"unexpected", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "unexpected error occurred"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := testServer(services{Themes: themeStub{err: tc.err}})

			req := httptest.NewRequest(http.MethodGet, "/v1/themes", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-1")
			rec := serve(e, req)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.msg, message(t, rec))
			assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))
		})
	}
}

func TestNewServer_BookingUsesCookieMember(t *testing.T) {
	res := &reservationStub{}
	e := testServer(services{Reservations: res})

	body := `{"date":"2025-01-02","time_id":3,"theme_id":3}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := utils.NewAccessToken(testSecret, 7, "brown", model.RoleUser, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: tok.Token})
	rec = serve(e, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, res.added, 1)
	assert.Equal(t, "brown", res.added[0].Name)
}

func TestNewServer_AdminRoutesNeedAdminRole(t *testing.T) {
	e := testServer(services{Themes: themeStub{}})

	tok, err := utils.NewAccessToken(testSecret, 7, "brown", model.RoleUser, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/themes/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	tok, err = utils.NewAccessToken(testSecret, 1, "admin", model.RoleAdmin, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodDelete, "/v1/admin/themes/1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusNoContent, serve(e, req).Code)
}

func TestSetupLogger(t *testing.T) {
	for _, env := range []string{envLocal, envDev, envProd, "staging"} {
		assert.NotNil(t, setupLogger(env), env)
	}
	assert.True(t, setupLogger(envLocal).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, setupLogger(envProd).Enabled(context.Background(), slog.LevelDebug))
}
