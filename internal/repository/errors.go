// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow the service layer to
// distinguish between "no such row", "row already exists" and "row still
// referenced" without inspecting driver errors itself.
package repository

import "errors"

// Lookup failures returned by the FetchBy* methods.
var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrReservationTimeNotFound = errors.New("reservation time not found")
	ErrThemeNotFound           = errors.New("theme not found")
	ErrMemberNotFound          = errors.New("member not found")
)

// ErrDuplicateReservation is returned by Save when the
// (theme_id, time_id, date) unique key is already taken.
var ErrDuplicateReservation = errors.New("duplicate reservation")

// ErrEmailExists is returned when a member with the same email exists.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when a delete cannot be performed because
// other rows still reference the target, such as deleting a theme that
// still has reservations.
var ErrConflict = errors.New("conflict")
