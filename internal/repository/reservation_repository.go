package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// ReservationRepo stores reservations in the reservation table.  Reads
// always join reservation_time and theme so callers receive fully
// populated slots and themes; there is no id-only read path.
type ReservationRepo struct {
	db *sqlx.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// reservationRow is one row of reservationSelect.  Joined columns are
// aliased so the names do not collide.
type reservationRow struct {
	ID               int64    `db:"id"`
	Name             string   `db:"name"`
	Date             sqlDate  `db:"date"`
	TimeID           int64    `db:"time_id"`
	StartAt          sqlClock `db:"time_start_at"`
	ThemeID          int64    `db:"theme_id"`
	ThemeName        string   `db:"theme_name"`
	ThemeDescription string   `db:"theme_description"`
	ThemeThumbnail   string   `db:"theme_thumbnail"`
}

func (r reservationRow) toModel() model.Reservation {
	return model.Reservation{
		ID:   r.ID,
		Name: r.Name,
		Date: r.Date.t,
		Time: model.ReservationTime{ID: r.TimeID, StartAt: r.StartAt.t},
		Theme: model.Theme{
			ID:          r.ThemeID,
			Name:        r.ThemeName,
			Description: r.ThemeDescription,
			Thumbnail:   r.ThemeThumbnail,
		},
	}
}

const reservationSelect = `SELECT r.id AS id, r.name AS name, r.date AS date,
       rt.id AS time_id, rt.start_at AS time_start_at,
       t.id AS theme_id, t.name AS theme_name, t.description AS theme_description, t.thumbnail AS theme_thumbnail
  FROM reservation r
  JOIN reservation_time rt ON rt.id = r.time_id
  JOIN theme t ON t.id = r.theme_id`

// FindAll returns every reservation ordered by id.  An empty table yields
// an empty, non-nil slice.
func (r *ReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	const op = "repository.ReservationRepo.FindAll"

	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, reservationSelect+` ORDER BY r.id`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toReservations(rows), nil
}

// FindAllByDateAndThemeID returns the reservations of one theme on one
// date, ordered by slot start time.
func (r *ReservationRepo) FindAllByDateAndThemeID(ctx context.Context, date time.Time, themeID int64) ([]model.Reservation, error) {
	const op = "repository.ReservationRepo.FindAllByDateAndThemeID"

	var rows []reservationRow
	q := reservationSelect + ` WHERE r.date = ? AND r.theme_id = ? ORDER BY rt.start_at, r.id`
	if err := r.db.SelectContext(ctx, &rows, q, dateValue(date), themeID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toReservations(rows), nil
}

// FindByID returns the reservation with the given id.  The boolean is
// false when no row matches.
func (r *ReservationRepo) FindByID(ctx context.Context, id int64) (model.Reservation, bool, error) {
	const op = "repository.ReservationRepo.FindByID"

	var row reservationRow
	err := r.db.GetContext(ctx, &row, reservationSelect+` WHERE r.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, false, nil
		}
		return model.Reservation{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), true, nil
}

// FetchByID is FindByID for callers that require the row; absence is
// reported as ErrReservationNotFound.
func (r *ReservationRepo) FetchByID(ctx context.Context, id int64) (model.Reservation, error) {
	res, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if !ok {
		return model.Reservation{}, fmt.Errorf("repository.ReservationRepo.FetchByID: %w", ErrReservationNotFound)
	}
	return res, nil
}

// Save inserts a reservation and returns it as persisted, with the
// generated id and the stored slot and theme.  A clash on the
// (theme_id, time_id, date) unique key is reported as
// ErrDuplicateReservation; this is what makes concurrent bookings of the
// same slot safe.
func (r *ReservationRepo) Save(ctx context.Context, res model.Reservation) (model.Reservation, error) {
	const op = "repository.ReservationRepo.Save"

	const q = `INSERT INTO reservation (name, date, time_id, theme_id) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.Name, dateValue(res.Date), res.Time.ID, res.Theme.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Reservation{}, fmt.Errorf("%s: %w", op, ErrDuplicateReservation)
		}
		return model.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	// Query back the full row so the caller sees exactly what was stored.
	return r.FetchByID(ctx, id)
}

// DeleteByID removes a reservation and returns the number of rows
// affected (0 or 1).
func (r *ReservationRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const op = "repository.ReservationRepo.DeleteByID"

	result, err := r.db.ExecContext(ctx, `DELETE FROM reservation WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ExistsByTimeID reports whether any reservation uses the time slot.
func (r *ReservationRepo) ExistsByTimeID(ctx context.Context, timeID int64) (bool, error) {
	return r.exists(ctx, "repository.ReservationRepo.ExistsByTimeID",
		`SELECT 1 FROM reservation WHERE time_id = ? LIMIT 1`, timeID)
}

// ExistsByThemeID reports whether any reservation uses the theme.
func (r *ReservationRepo) ExistsByThemeID(ctx context.Context, themeID int64) (bool, error) {
	return r.exists(ctx, "repository.ReservationRepo.ExistsByThemeID",
		`SELECT 1 FROM reservation WHERE theme_id = ? LIMIT 1`, themeID)
}

// ExistsByThemeAndDateAndTimeID reports whether the slot is already
// booked for the theme on the date.
func (r *ReservationRepo) ExistsByThemeAndDateAndTimeID(ctx context.Context, themeID int64, date time.Time, timeID int64) (bool, error) {
	return r.exists(ctx, "repository.ReservationRepo.ExistsByThemeAndDateAndTimeID",
		`SELECT 1 FROM reservation WHERE theme_id = ? AND time_id = ? AND date = ? LIMIT 1`,
		themeID, timeID, dateValue(date))
}

func (r *ReservationRepo) exists(ctx context.Context, op, q string, args ...any) (bool, error) {
	var one int
	if err := r.db.GetContext(ctx, &one, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// popularThemeRow carries the count only so it can be ordered on.
type popularThemeRow struct {
	themeRow
	Count int64 `db:"reservation_count"`
}

// FindPopularThemes ranks themes by number of reservations whose date
// falls in [from, until], both inclusive.  Ties are broken by theme id
// ascending.  Themes without reservations in the range are omitted.
func (r *ReservationRepo) FindPopularThemes(ctx context.Context, from, until time.Time, limit int) ([]model.Theme, error) {
	const op = "repository.ReservationRepo.FindPopularThemes"

	const q = `SELECT t.id AS id, t.name AS name, t.description AS description, t.thumbnail AS thumbnail,
                      COUNT(r.id) AS reservation_count
                 FROM reservation r
                 JOIN theme t ON t.id = r.theme_id
                WHERE r.date BETWEEN ? AND ?
                GROUP BY t.id, t.name, t.description, t.thumbnail
                ORDER BY reservation_count DESC, t.id ASC
                LIMIT ?`
	var rows []popularThemeRow
	if err := r.db.SelectContext(ctx, &rows, q, dateValue(from), dateValue(until), limit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]model.Theme, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func toReservations(rows []reservationRow) []model.Reservation {
	out := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}
