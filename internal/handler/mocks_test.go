package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
	"github.com/iliyamo/roomescape-reservation/internal/utils"
)

const testSecret = "handler-test-secret"

// --- Mock services ---

type mockReservationService struct {
	listFn   func(ctx context.Context) ([]model.Reservation, error)
	addFn    func(ctx context.Context, in service.AddReservationInput) (model.Reservation, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockReservationService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	return m.listFn(ctx)
}
func (m *mockReservationService) AddReservation(ctx context.Context, in service.AddReservationInput) (model.Reservation, error) {
	return m.addFn(ctx, in)
}
func (m *mockReservationService) DeleteReservation(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockTimeService struct {
	listFn      func(ctx context.Context) ([]model.ReservationTime, error)
	addFn       func(ctx context.Context, startAt model.TimeOfDay) (model.ReservationTime, error)
	deleteFn    func(ctx context.Context, id int64) error
	availableFn func(ctx context.Context, date time.Time, themeID int64) ([]service.AvailableTime, error)
}

func (m *mockTimeService) ListTimes(ctx context.Context) ([]model.ReservationTime, error) {
	return m.listFn(ctx)
}
func (m *mockTimeService) AddTime(ctx context.Context, startAt model.TimeOfDay) (model.ReservationTime, error) {
	return m.addFn(ctx, startAt)
}
func (m *mockTimeService) DeleteTime(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockTimeService) AvailableTimes(ctx context.Context, date time.Time, themeID int64) ([]service.AvailableTime, error) {
	return m.availableFn(ctx, date, themeID)
}

type mockThemeService struct {
	listFn    func(ctx context.Context) ([]model.Theme, error)
	addFn     func(ctx context.Context, t model.Theme) (model.Theme, error)
	deleteFn  func(ctx context.Context, id int64) error
	popularFn func(ctx context.Context) ([]model.Theme, error)
}

func (m *mockThemeService) ListThemes(ctx context.Context) ([]model.Theme, error) {
	return m.listFn(ctx)
}
func (m *mockThemeService) AddTheme(ctx context.Context, t model.Theme) (model.Theme, error) {
	return m.addFn(ctx, t)
}
func (m *mockThemeService) DeleteTheme(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockThemeService) PopularThemes(ctx context.Context) ([]model.Theme, error) {
	return m.popularFn(ctx)
}

type mockMemberService struct {
	registerFn func(ctx context.Context, in service.RegisterInput) (model.Member, error)
	loginFn    func(ctx context.Context, email, password string) (utils.AccessToken, model.Member, error)
	memberFn   func(ctx context.Context, id int64) (model.Member, error)
	listFn     func(ctx context.Context) ([]model.Member, error)
}

func (m *mockMemberService) Register(ctx context.Context, in service.RegisterInput) (model.Member, error) {
	return m.registerFn(ctx, in)
}
func (m *mockMemberService) Login(ctx context.Context, email, password string) (utils.AccessToken, model.Member, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockMemberService) Member(ctx context.Context, id int64) (model.Member, error) {
	return m.memberFn(ctx, id)
}
func (m *mockMemberService) ListMembers(ctx context.Context) ([]model.Member, error) {
	return m.listFn(ctx)
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(discardLogger())
	return e
}

func authed() echo.MiddlewareFunc {
	return middleware.JWTAuth(testSecret)
}

func bearer(t *testing.T, id int64, name, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, id, name, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func do(e *echo.Echo, method, target, body, auth string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["message"]
}

func sampleReservation() model.Reservation {
	d, _ := model.ParseDate("2025-01-02")
	return model.Reservation{
		ID:    1,
		Name:  "lini",
		Date:  d,
		Time:  model.ReservationTime{ID: 3, StartAt: model.MustTimeOfDay("12:25")},
		Theme: model.Theme{ID: 3, Name: "level2", Description: "desc", Thumbnail: "thumb.png"},
	}
}

