package repository

import (
	"context"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// The interfaces below are the persistence contracts the services depend
// on.  FindBy* methods report absence through the boolean result and only
// fail on storage errors; FetchBy* methods turn absence into a not-found
// sentinel for callers that require the row to exist.

// ReservationRepository persists reservations.  Every returned reservation
// carries a fully populated Time and Theme.
type ReservationRepository interface {
	FindAll(ctx context.Context) ([]model.Reservation, error)
	FindByID(ctx context.Context, id int64) (model.Reservation, bool, error)
	FetchByID(ctx context.Context, id int64) (model.Reservation, error)
	FindAllByDateAndThemeID(ctx context.Context, date time.Time, themeID int64) ([]model.Reservation, error)
	Save(ctx context.Context, r model.Reservation) (model.Reservation, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	ExistsByTimeID(ctx context.Context, timeID int64) (bool, error)
	ExistsByThemeID(ctx context.Context, themeID int64) (bool, error)
	ExistsByThemeAndDateAndTimeID(ctx context.Context, themeID int64, date time.Time, timeID int64) (bool, error)
	FindPopularThemes(ctx context.Context, from, until time.Time, limit int) ([]model.Theme, error)
}

// ReservationTimeRepository persists time slots.
type ReservationTimeRepository interface {
	FindAll(ctx context.Context) ([]model.ReservationTime, error)
	FindByID(ctx context.Context, id int64) (model.ReservationTime, bool, error)
	FetchByID(ctx context.Context, id int64) (model.ReservationTime, error)
	Save(ctx context.Context, t model.ReservationTime) (model.ReservationTime, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// ThemeRepository persists themes.
type ThemeRepository interface {
	FindAll(ctx context.Context) ([]model.Theme, error)
	FindByID(ctx context.Context, id int64) (model.Theme, bool, error)
	FetchByID(ctx context.Context, id int64) (model.Theme, error)
	Save(ctx context.Context, t model.Theme) (model.Theme, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
}

// MemberRepository persists member accounts.  Emails are compared
// case-insensitively.
type MemberRepository interface {
	FindAll(ctx context.Context) ([]model.Member, error)
	FindByID(ctx context.Context, id int64) (model.Member, bool, error)
	FetchByID(ctx context.Context, id int64) (model.Member, error)
	FindByEmail(ctx context.Context, email string) (model.Member, bool, error)
	FetchByEmail(ctx context.Context, email string) (model.Member, error)
	Save(ctx context.Context, m model.Member) (model.Member, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

var (
	_ ReservationRepository     = (*ReservationRepo)(nil)
	_ ReservationTimeRepository = (*ReservationTimeRepo)(nil)
	_ ThemeRepository           = (*ThemeRepo)(nil)
	_ MemberRepository          = (*MemberRepo)(nil)
)
