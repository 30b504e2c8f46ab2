package model

// ReservationTime is a reusable time slot that reservations point at.
// The same slot is shared by every date and every theme.
//
// Fields:
//  ID      – primary key identifier.
//  StartAt – time of day the slot begins.
type ReservationTime struct {
	ID      int64     // reservation_time.id
	StartAt TimeOfDay // reservation_time.start_at
}
