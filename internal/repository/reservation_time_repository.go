package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// ReservationTimeRepo provides access to the reservation_time table.
type ReservationTimeRepo struct {
	db *sqlx.DB
}

// NewReservationTimeRepo constructs a ReservationTimeRepo with the given DB handle.
func NewReservationTimeRepo(db *sqlx.DB) *ReservationTimeRepo {
	return &ReservationTimeRepo{db: db}
}

type reservationTimeRow struct {
	ID      int64    `db:"id"`
	StartAt sqlClock `db:"start_at"`
}

func (r reservationTimeRow) toModel() model.ReservationTime {
	return model.ReservationTime{ID: r.ID, StartAt: r.StartAt.t}
}

// FindAll returns every time slot ordered by id.
func (r *ReservationTimeRepo) FindAll(ctx context.Context) ([]model.ReservationTime, error) {
	const op = "repository.ReservationTimeRepo.FindAll"

	var rows []reservationTimeRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, start_at FROM reservation_time ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]model.ReservationTime, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// FindByID looks up a slot; ok is false when it does not exist.
func (r *ReservationTimeRepo) FindByID(ctx context.Context, id int64) (model.ReservationTime, bool, error) {
	const op = "repository.ReservationTimeRepo.FindByID"

	var row reservationTimeRow
	err := r.db.GetContext(ctx, &row, `SELECT id, start_at FROM reservation_time WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ReservationTime{}, false, nil
		}
		return model.ReservationTime{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), true, nil
}

// FetchByID returns ErrReservationTimeNotFound when the slot does not exist.
func (r *ReservationTimeRepo) FetchByID(ctx context.Context, id int64) (model.ReservationTime, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.ReservationTime{}, err
	}
	if !ok {
		return model.ReservationTime{}, fmt.Errorf("repository.ReservationTimeRepo.FetchByID: %w", ErrReservationTimeNotFound)
	}
	return t, nil
}

// Save inserts the slot and returns it with its generated id.
func (r *ReservationTimeRepo) Save(ctx context.Context, t model.ReservationTime) (model.ReservationTime, error) {
	const op = "repository.ReservationTimeRepo.Save"

	res, err := r.db.ExecContext(ctx, `INSERT INTO reservation_time (start_at) VALUES (?)`, clockValue(t.StartAt))
	if err != nil {
		return model.ReservationTime{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ReservationTime{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.FetchByID(ctx, id)
}

// DeleteByID removes the slot and returns the number of deleted rows.
// A slot still referenced by a reservation yields ErrConflict.
func (r *ReservationTimeRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const op = "repository.ReservationTimeRepo.DeleteByID"

	res, err := r.db.ExecContext(ctx, `DELETE FROM reservation_time WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
