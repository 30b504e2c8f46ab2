package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/metrics"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
)

// EventPublisher announces stored reservations to other systems.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, r model.Reservation) error
}

// OutcomeObserver records booking outcomes, see the metrics.Outcome* labels.
type OutcomeObserver interface {
	ObserveReservation(outcome string)
	ObserveEvent(ok bool)
}

// publishTimeout bounds the best-effort event publish after a booking.
const publishTimeout = 3 * time.Second

// AddReservationInput is a booking request.  Date is a calendar date; its
// clock part is ignored.
type AddReservationInput struct {
	Name    string
	Date    time.Time
	TimeID  int64
	ThemeID int64
}

type ReservationService struct {
	log          *slog.Logger
	reservations repository.ReservationRepository
	times        repository.ReservationTimeRepository
	themes       repository.ThemeRepository
	publisher    EventPublisher
	observer     OutcomeObserver
	loc          *time.Location
	now          func() time.Time
}

// NewReservationService returns a ReservationService.  publisher and
// observer may be nil.  loc is the zone dates and slot times are
// interpreted in when rejecting past slots.
func NewReservationService(
	log *slog.Logger,
	reservations repository.ReservationRepository,
	times repository.ReservationTimeRepository,
	themes repository.ThemeRepository,
	publisher EventPublisher,
	observer OutcomeObserver,
	loc *time.Location,
) *ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationService{
		log:          log,
		reservations: reservations,
		times:        times,
		themes:       themes,
		publisher:    publisher,
		observer:     observer,
		loc:          loc,
		now:          time.Now,
	}
}

// ListReservations returns every reservation ordered by id.
func (s *ReservationService) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	const op = "service.ReservationService.ListReservations"

	reservations, err := s.reservations.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to list reservations", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reservations, nil
}

// AddReservation books a slot.  The time and theme must exist, the
// (theme, date, time) triple must be free, and the slot must not have
// started yet.  Checks run in that order, so a request that is both a
// duplicate and in the past fails with ErrDuplicateReservation.
func (s *ReservationService) AddReservation(ctx context.Context, in AddReservationInput) (model.Reservation, error) {
	const op = "service.ReservationService.AddReservation"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("time_id", in.TimeID),
		slog.Int64("theme_id", in.ThemeID),
		slog.String("date", in.Date.Format(model.DateLayout)),
	)

	rt, ok, err := s.times.FindByID(ctx, in.TimeID)
	if err != nil {
		return s.fail(log, op, err)
	}
	if !ok {
		return s.reject(log, op, metrics.OutcomeTimeNotFound, ErrTimeNotFound)
	}

	theme, ok, err := s.themes.FindByID(ctx, in.ThemeID)
	if err != nil {
		return s.fail(log, op, err)
	}
	if !ok {
		return s.reject(log, op, metrics.OutcomeThemeNotFound, ErrThemeNotFound)
	}

	candidate := model.Reservation{
		Name:  in.Name,
		Date:  model.TruncateDate(in.Date),
		Time:  rt,
		Theme: theme,
	}

	taken, err := s.reservations.ExistsByThemeAndDateAndTimeID(ctx, theme.ID, candidate.Date, rt.ID)
	if err != nil {
		return s.fail(log, op, err)
	}
	if taken {
		return s.reject(log, op, metrics.OutcomeDuplicate, ErrDuplicateReservation)
	}

	if candidate.DateTime(s.loc).Before(s.now()) {
		return s.reject(log, op, metrics.OutcomePast, ErrPastReservationTime)
	}

	saved, err := s.reservations.Save(ctx, candidate)
	if err != nil {
		// Another request may have taken the slot since the check above.
		if errors.Is(err, repository.ErrDuplicateReservation) {
			return s.reject(log, op, metrics.OutcomeDuplicate, ErrDuplicateReservation)
		}
		return s.fail(log, op, err)
	}

	s.observe(metrics.OutcomeCreated)
	log.Info("reservation created", slog.Int64("reservation_id", saved.ID))
	s.publish(ctx, log, saved)

	return saved, nil
}

// DeleteReservation removes a reservation.  A missing id always fails
// with ErrReservationNotFound, including one that was already deleted.
func (s *ReservationService) DeleteReservation(ctx context.Context, id int64) error {
	const op = "service.ReservationService.DeleteReservation"
	log := s.log.With(slog.String("op", op), slog.Int64("reservation_id", id))

	if _, err := s.reservations.FetchByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			s.observe(metrics.OutcomeDeleteNotFound)
			log.Warn("reservation not found")
			return fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		log.Error("failed to fetch reservation", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.reservations.DeleteByID(ctx, id)
	if err != nil {
		log.Error("failed to delete reservation", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		// Deleted concurrently between the fetch and the delete.
		s.observe(metrics.OutcomeDeleteNotFound)
		return fmt.Errorf("%s: %w", op, ErrReservationNotFound)
	}

	s.observe(metrics.OutcomeDeleted)
	log.Info("reservation deleted")
	return nil
}

func (s *ReservationService) reject(log *slog.Logger, op, outcome string, err error) (model.Reservation, error) {
	s.observe(outcome)
	log.Warn("reservation rejected", slog.String("reason", err.Error()))
	return model.Reservation{}, fmt.Errorf("%s: %w", op, err)
}

func (s *ReservationService) fail(log *slog.Logger, op string, err error) (model.Reservation, error) {
	s.observe(metrics.OutcomeError)
	log.Error("failed to add reservation", sl.Err(err))
	return model.Reservation{}, fmt.Errorf("%s: %w", op, err)
}

func (s *ReservationService) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveReservation(outcome)
	}
}

// publish never fails the booking; the reservation is already stored.
func (s *ReservationService) publish(ctx context.Context, log *slog.Logger, r model.Reservation) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.PublishReservationCreated(ctx, r)
	if s.observer != nil {
		s.observer.ObserveEvent(err == nil)
	}
	if err != nil {
		log.Warn("failed to publish reservation event", slog.Int64("reservation_id", r.ID), sl.Err(err))
	}
}
