package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// newTestDB opens a private in-memory database with the schema applied.
// A single connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

type fixture struct {
	db           *sqlx.DB
	reservations *ReservationRepo
	times        *ReservationTimeRepo
	themes       *ThemeRepo
	members      *MemberRepo
}

func newFixture(t *testing.T) fixture {
	db := newTestDB(t)
	return fixture{
		db:           db,
		reservations: NewReservationRepo(db),
		times:        NewReservationTimeRepo(db),
		themes:       NewThemeRepo(db),
		members:      NewMemberRepo(db),
	}
}

func (f fixture) addTime(t *testing.T, hhmm string) model.ReservationTime {
	t.Helper()
	rt, err := f.times.Save(context.Background(), model.ReservationTime{StartAt: model.MustTimeOfDay(hhmm)})
	require.NoError(t, err)
	return rt
}

func (f fixture) addTheme(t *testing.T, name string) model.Theme {
	t.Helper()
	th, err := f.themes.Save(context.Background(), model.Theme{
		Name:        name,
		Description: name + " description",
		Thumbnail:   "https://example.com/" + name + ".png",
	})
	require.NoError(t, err)
	return th
}

func (f fixture) addReservation(t *testing.T, name, day string, rt model.ReservationTime, th model.Theme) model.Reservation {
	t.Helper()
	res, err := f.reservations.Save(context.Background(), model.Reservation{Name: name, Date: date(t, day), Time: rt, Theme: th})
	require.NoError(t, err)
	return res
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}
