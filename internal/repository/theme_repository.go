package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// ThemeRepo provides access to the theme table.
type ThemeRepo struct {
	db *sqlx.DB
}

// NewThemeRepo constructs a ThemeRepo with the given DB handle.
func NewThemeRepo(db *sqlx.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

type themeRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Thumbnail   string `db:"thumbnail"`
}

func (r themeRow) toModel() model.Theme {
	return model.Theme{ID: r.ID, Name: r.Name, Description: r.Description, Thumbnail: r.Thumbnail}
}

const themeSelect = `SELECT id, name, description, thumbnail FROM theme`

// FindAll returns every theme ordered by id.
func (r *ThemeRepo) FindAll(ctx context.Context) ([]model.Theme, error) {
	const op = "repository.ThemeRepo.FindAll"

	var rows []themeRow
	if err := r.db.SelectContext(ctx, &rows, themeSelect+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]model.Theme, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// FindByID looks up a theme; ok is false when it does not exist.
func (r *ThemeRepo) FindByID(ctx context.Context, id int64) (model.Theme, bool, error) {
	const op = "repository.ThemeRepo.FindByID"

	var row themeRow
	if err := r.db.GetContext(ctx, &row, themeSelect+` WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Theme{}, false, nil
		}
		return model.Theme{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), true, nil
}

// FetchByID returns ErrThemeNotFound when the theme does not exist.
func (r *ThemeRepo) FetchByID(ctx context.Context, id int64) (model.Theme, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Theme{}, err
	}
	if !ok {
		return model.Theme{}, fmt.Errorf("repository.ThemeRepo.FetchByID: %w", ErrThemeNotFound)
	}
	return t, nil
}

// Save inserts the theme and reads it back.
func (r *ThemeRepo) Save(ctx context.Context, t model.Theme) (model.Theme, error) {
	const op = "repository.ThemeRepo.Save"

	const q = `INSERT INTO theme (name, description, thumbnail) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Description, t.Thumbnail)
	if err != nil {
		return model.Theme{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Theme{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.FetchByID(ctx, id)
}

// DeleteByID removes the theme and returns the number of deleted rows.
// A theme that still has reservations yields ErrConflict.
func (r *ThemeRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const op = "repository.ThemeRepo.DeleteByID"

	res, err := r.db.ExecContext(ctx, `DELETE FROM theme WHERE id = ?`, id)
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
