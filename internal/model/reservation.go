package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date form used in storage and JSON.
const DateLayout = "2006-01-02"

// Reservation is a booked occupancy of one theme at one time slot on
// one calendar date.  Reservations are never updated: they are created
// by the booking service and deleted by id.
//
// Fields:
//  ID    – primary key identifier, assigned on insert.
//  Name  – name of the member who requested the reservation.
//  Date  – calendar date; midnight UTC, the clock part is ignored.
//  Time  – the slot, fully populated.
//  Theme – the theme, fully populated.
type Reservation struct {
	ID    int64           // reservation.id
	Name  string          // reservation.name
	Date  time.Time       // reservation.date
	Time  ReservationTime // reservation.time_id
	Theme Theme           // reservation.theme_id
}

// DateTime combines the reservation date with the slot start time as an
// instant in loc.
func (r Reservation) DateTime(loc *time.Location) time.Time {
	return r.Time.StartAt.On(r.Date, loc)
}

// DateString renders the date as 2006-01-02.
func (r Reservation) DateString() string {
	return r.Date.Format(DateLayout)
}

// ParseDate parses a 2006-01-02 date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// TruncateDate drops the clock part of t, keeping its calendar date.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
