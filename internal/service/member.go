package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/repository"
	"github.com/iliyamo/roomescape-reservation/internal/utils"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type MemberService struct {
	log        *slog.Logger
	members    repository.MemberRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

// NewMemberService returns a new instance of the MemberService.
func NewMemberService(
	log *slog.Logger,
	members repository.MemberRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	bcryptCost int,
) *MemberService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &MemberService{
		log:        log,
		members:    members,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

// Register creates a USER account.
func (s *MemberService) Register(ctx context.Context, in RegisterInput) (model.Member, error) {
	const op = "service.MemberService.Register"
	log := s.log.With(slog.String("op", op))
	log.Info("registering member")

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	m, err := s.members.Save(ctx, model.Member{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Warn("email already registered")
			return model.Member{}, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		log.Error("failed to save member", sl.Err(err))
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("member registered", slog.Int64("member_id", m.ID))
	return m, nil
}

// Login checks the credentials and issues an access token.  An unknown
// email and a wrong password fail the same way.
func (s *MemberService) Login(ctx context.Context, email, password string) (utils.AccessToken, model.Member, error) {
	const op = "service.MemberService.Login"
	log := s.log.With(slog.String("op", op))
	log.Info("login member")

	m, err := s.members.FetchByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			log.Warn("member not found")
			return utils.AccessToken{}, model.Member{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get member", sl.Err(err))
		return utils.AccessToken{}, model.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		log.Warn("invalid credentials", slog.Int64("member_id", m.ID))
		return utils.AccessToken{}, model.Member{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	tok, err := utils.NewAccessToken(s.jwtSecret, m.ID, m.Name, m.Role, s.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return utils.AccessToken{}, model.Member{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("member logged in", slog.Int64("member_id", m.ID))
	return tok, m, nil
}

// Member returns the account with the given id.
func (s *MemberService) Member(ctx context.Context, id int64) (model.Member, error) {
	const op = "service.MemberService.Member"

	m, err := s.members.FetchByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return model.Member{}, fmt.Errorf("%s: %w", op, ErrMemberNotFound)
		}
		return model.Member{}, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

func (s *MemberService) ListMembers(ctx context.Context) ([]model.Member, error) {
	const op = "service.MemberService.ListMembers"

	members, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}
