package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
)

// AvailableTime is a slot together with whether it is taken for the
// requested theme and date.
type AvailableTime struct {
	Time   model.ReservationTime
	Booked bool
}

type ReservationTimeService struct {
	log          *slog.Logger
	times        repository.ReservationTimeRepository
	reservations repository.ReservationRepository
}

func NewReservationTimeService(
	log *slog.Logger,
	times repository.ReservationTimeRepository,
	reservations repository.ReservationRepository,
) *ReservationTimeService {
	return &ReservationTimeService{log: log, times: times, reservations: reservations}
}

func (s *ReservationTimeService) ListTimes(ctx context.Context) ([]model.ReservationTime, error) {
	const op = "service.ReservationTimeService.ListTimes"

	times, err := s.times.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return times, nil
}

func (s *ReservationTimeService) AddTime(ctx context.Context, startAt model.TimeOfDay) (model.ReservationTime, error) {
	const op = "service.ReservationTimeService.AddTime"
	log := s.log.With(slog.String("op", op), slog.String("start_at", startAt.String()))

	saved, err := s.times.Save(ctx, model.ReservationTime{StartAt: startAt})
	if err != nil {
		log.Error("failed to save time", sl.Err(err))
		return model.ReservationTime{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("time created", slog.Int64("time_id", saved.ID))
	return saved, nil
}

// DeleteTime removes a slot that no reservation uses.
func (s *ReservationTimeService) DeleteTime(ctx context.Context, id int64) error {
	const op = "service.ReservationTimeService.DeleteTime"
	log := s.log.With(slog.String("op", op), slog.Int64("time_id", id))

	if _, err := s.times.FetchByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationTimeNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTimeNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	used, err := s.reservations.ExistsByTimeID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if used {
		log.Warn("time still in use")
		return fmt.Errorf("%s: %w", op, ErrTimeInUse)
	}

	if _, err := s.times.DeleteByID(ctx, id); err != nil {
		// The foreign key catches a reservation added after the check.
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s: %w", op, ErrTimeInUse)
		}
		log.Error("failed to delete time", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("time deleted")
	return nil
}

// AvailableTimes lists every slot ordered by start time and marks the ones
// already booked for themeID on date.
func (s *ReservationTimeService) AvailableTimes(ctx context.Context, date time.Time, themeID int64) ([]AvailableTime, error) {
	const op = "service.ReservationTimeService.AvailableTimes"

	times, err := s.times.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	booked, err := s.reservations.FindAllByDateAndThemeID(ctx, model.TruncateDate(date), themeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	taken := make(map[int64]bool, len(booked))
	for _, r := range booked {
		taken[r.Time.ID] = true
	}
	out := make([]AvailableTime, 0, len(times))
	for _, t := range times {
		out = append(out, AvailableTime{Time: t, Booked: taken[t.ID]})
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(ts []AvailableTime) {
	slices.SortStableFunc(ts, func(a, b AvailableTime) int {
		switch {
		case a.Time.StartAt.Before(b.Time.StartAt):
			return -1
		case b.Time.StartAt.Before(a.Time.StartAt):
			return 1
		}
		return 0
	})
}
