// Package service implements the booking rules and the administrative
// flows around times, themes and members.
package service

import "errors"

// Domain failures.  The HTTP layer maps each of these to 400 and uses the
// text as the response message.
var (
	ErrTimeNotFound         = errors.New("reservation time not found")
	ErrThemeNotFound        = errors.New("theme not found")
	ErrDuplicateReservation = errors.New("a reservation already exists for this theme, date and time")
	ErrPastReservationTime  = errors.New("cannot reserve a time that has already passed")
	ErrReservationNotFound  = errors.New("reservation not found")

	ErrTimeInUse  = errors.New("reservation time is still used by reservations")
	ErrThemeInUse = errors.New("theme is still used by reservations")

	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMemberNotFound     = errors.New("member not found")
)

// DomainErrors lists every sentinel above, in declaration order.
var DomainErrors = []error{
	ErrTimeNotFound,
	ErrThemeNotFound,
	ErrDuplicateReservation,
	ErrPastReservationTime,
	ErrReservationNotFound,
	ErrTimeInUse,
	ErrThemeInUse,
	ErrEmailExists,
	ErrInvalidCredentials,
	ErrMemberNotFound,
}

// DomainError returns the sentinel from DomainErrors that err wraps, or
// nil when err is not a domain failure.
func DomainError(err error) error {
	for _, d := range DomainErrors {
		if errors.Is(err, d) {
			return d
		}
	}
	return nil
}
