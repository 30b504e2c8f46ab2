// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// ReservationCreatedQueue is the durable queue reservation events go to.
const ReservationCreatedQueue = "reservation.created"

// ReservationCreatedEvent is published after a reservation is stored.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ReservationCreatedEvent struct {
	EventID       string `json:"event_id"`
	ReservationID int64  `json:"reservation_id"`
	Name          string `json:"name"`
	Date          string `json:"date"`
	StartAt       string `json:"start_at"`
	ThemeID       int64  `json:"theme_id"`
	ThemeName     string `json:"theme_name"`
	CreatedAt     string `json:"created_at"`
}

// NewReservationCreatedEvent builds the event for a persisted reservation.
func NewReservationCreatedEvent(r model.Reservation, at time.Time) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		EventID:       uuid.NewString(),
		ReservationID: r.ID,
		Name:          r.Name,
		Date:          r.DateString(),
		StartAt:       r.Time.StartAt.String(),
		ThemeID:       r.Theme.ID,
		ThemeName:     r.Theme.Name,
		CreatedAt:     at.UTC().Format(time.RFC3339),
	}
}
