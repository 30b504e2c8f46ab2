package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
)

// PopularityWindow configures the theme ranking: the Days whole days
// before today, today excluded, and at most Limit themes.
type PopularityWindow struct {
	Days  int
	Limit int
}

type ThemeService struct {
	log          *slog.Logger
	themes       repository.ThemeRepository
	reservations repository.ReservationRepository
	window       PopularityWindow
	loc          *time.Location
	now          func() time.Time
}

func NewThemeService(
	log *slog.Logger,
	themes repository.ThemeRepository,
	reservations repository.ReservationRepository,
	window PopularityWindow,
	loc *time.Location,
) *ThemeService {
	if window.Days < 1 {
		window.Days = 7
	}
	if window.Limit < 1 {
		window.Limit = 10
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ThemeService{
		log:          log,
		themes:       themes,
		reservations: reservations,
		window:       window,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *ThemeService) ListThemes(ctx context.Context) ([]model.Theme, error) {
	const op = "service.ThemeService.ListThemes"

	themes, err := s.themes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return themes, nil
}

func (s *ThemeService) AddTheme(ctx context.Context, t model.Theme) (model.Theme, error) {
	const op = "service.ThemeService.AddTheme"
	log := s.log.With(slog.String("op", op), slog.String("name", t.Name))

	saved, err := s.themes.Save(ctx, model.Theme{Name: t.Name, Description: t.Description, Thumbnail: t.Thumbnail})
	if err != nil {
		log.Error("failed to save theme", sl.Err(err))
		return model.Theme{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("theme created", slog.Int64("theme_id", saved.ID))
	return saved, nil
}

// DeleteTheme removes a theme that has no reservations.
func (s *ThemeService) DeleteTheme(ctx context.Context, id int64) error {
	const op = "service.ThemeService.DeleteTheme"
	log := s.log.With(slog.String("op", op), slog.Int64("theme_id", id))

	if _, err := s.themes.FetchByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrThemeNotFound) {
			return fmt.Errorf("%s: %w", op, ErrThemeNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	used, err := s.reservations.ExistsByThemeID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if used {
		log.Warn("theme still in use")
		return fmt.Errorf("%s: %w", op, ErrThemeInUse)
	}

	if _, err := s.themes.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("%s: %w", op, ErrThemeInUse)
		}
		log.Error("failed to delete theme", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("theme deleted")
	return nil
}

// PopularThemes ranks themes by reservations dated within the window
// ending yesterday, most booked first and lower id first on ties.
func (s *ThemeService) PopularThemes(ctx context.Context) ([]model.Theme, error) {
	const op = "service.ThemeService.PopularThemes"

	from, until := s.popularRange()
	themes, err := s.reservations.FindPopularThemes(ctx, from, until, s.window.Limit)
	if err != nil {
		s.log.Error("failed to rank themes", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return themes, nil
}

// popularRange returns [today-Days, today-1] as calendar dates in s.loc.
func (s *ThemeService) popularRange() (from, until time.Time) {
	today := model.TruncateDate(s.now().In(s.loc))
	return today.AddDate(0, 0, -s.window.Days), today.AddDate(0, 0, -1)
}
