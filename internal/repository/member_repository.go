package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/roomescape-reservation/internal/model"
)

// MemberRepo mirrors the 'member' table.
type MemberRepo struct{ db *sqlx.DB }

// NewMemberRepo wraps db.
func NewMemberRepo(db *sqlx.DB) *MemberRepo { return &MemberRepo{db: db} }

type memberRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

func (r memberRow) toModel() model.Member {
	return model.Member{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
	}
}

const memberSelect = `SELECT id, name, email, password_hash, role FROM member`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindAll returns every member ordered by id.
func (r *MemberRepo) FindAll(ctx context.Context) ([]model.Member, error) {
	const op = "repository.MemberRepo.FindAll"

	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, memberSelect+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]model.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// FindByID returns the member with the given id; ok is false when absent.
func (r *MemberRepo) FindByID(ctx context.Context, id int64) (model.Member, bool, error) {
	return r.findOne(ctx, "repository.MemberRepo.FindByID", memberSelect+` WHERE id = ?`, id)
}

// FetchByID is FindByID that fails with ErrMemberNotFound when absent.
func (r *MemberRepo) FetchByID(ctx context.Context, id int64) (model.Member, error) {
	m, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return model.Member{}, err
	}
	if !ok {
		return model.Member{}, fmt.Errorf("repository.MemberRepo.FetchByID: %w", ErrMemberNotFound)
	}
	return m, nil
}

// FindByEmail looks a member up by normalized email.
func (r *MemberRepo) FindByEmail(ctx context.Context, email string) (model.Member, bool, error) {
	return r.findOne(ctx, "repository.MemberRepo.FindByEmail", memberSelect+` WHERE email = ? LIMIT 1`, normalizeEmail(email))
}

// FetchByEmail is FindByEmail that fails with ErrMemberNotFound when absent.
func (r *MemberRepo) FetchByEmail(ctx context.Context, email string) (model.Member, error) {
	m, ok, err := r.FindByEmail(ctx, email)
	if err != nil {
		return model.Member{}, err
	}
	if !ok {
		return model.Member{}, fmt.Errorf("repository.MemberRepo.FetchByEmail: %w", ErrMemberNotFound)
	}
	return m, nil
}

func (r *MemberRepo) findOne(ctx context.Context, op, q string, arg any) (model.Member, bool, error) {
	var row memberRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, false, nil
		}
		return model.Member{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return row.toModel(), true, nil
}

// Save inserts a member.  The email is stored lower-case; a second
// account with the same email yields ErrEmailExists.  An empty role
// defaults to USER.
func (r *MemberRepo) Save(ctx context.Context, m model.Member) (model.Member, error) {
	const op = "repository.MemberRepo.Save"

	role := m.Role
	if role == "" {
		role = model.RoleUser
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO member (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		m.Name, normalizeEmail(m.Email), m.PasswordHash, role)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Member{}, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}
	return r.FetchByID(ctx, id)
}

// DeleteByEmail removes the member with the given email.
func (r *MemberRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	const op = "repository.MemberRepo.DeleteByEmail"

	res, err := r.db.ExecContext(ctx, `DELETE FROM member WHERE email = ?`, normalizeEmail(email))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
