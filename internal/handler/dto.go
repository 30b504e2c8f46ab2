package handler

import (
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
)

// ----- requests -----

type reservationReq struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeID  int64  `json:"time_id" validate:"required,gt=0"`
	ThemeID int64  `json:"theme_id" validate:"required,gt=0"`
}

type adminReservationReq struct {
	Name string `json:"name" validate:"required,max=255"`
	reservationReq
}

type timeReq struct {
	StartAt string `json:"start_at" validate:"required,datetime=15:04"`
}

type themeReq struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=255"`
	Thumbnail   string `json:"thumbnail" validate:"required,max=255"`
}

type registerReq struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type availableQuery struct {
	Date    string `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	ThemeID int64  `query:"theme_id" json:"theme_id" validate:"required,gt=0"`
}

// ----- responses -----

type timeResp struct {
	ID      int64  `json:"id"`
	StartAt string `json:"start_at"`
}

type themeResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

type reservationResp struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Date  string    `json:"date"`
	Time  timeResp  `json:"time"`
	Theme themeResp `json:"theme"`
}

type availableTimeResp struct {
	timeResp
	Booked bool `json:"already_booked"`
}

type memberResp struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResp struct {
	Member      memberResp `json:"member"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   string     `json:"expires_at"`
}

func toTimeResp(t model.ReservationTime) timeResp {
	return timeResp{ID: t.ID, StartAt: t.StartAt.String()}
}

func toThemeResp(t model.Theme) themeResp {
	return themeResp{ID: t.ID, Name: t.Name, Description: t.Description, Thumbnail: t.Thumbnail}
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:    r.ID,
		Name:  r.Name,
		Date:  r.DateString(),
		Time:  toTimeResp(r.Time),
		Theme: toThemeResp(r.Theme),
	}
}

func toMemberResp(m model.Member) memberResp {
	return memberResp{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role}
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func toAvailableResp(a service.AvailableTime) availableTimeResp {
	return availableTimeResp{timeResp: toTimeResp(a.Time), Booked: a.Booked}
}
