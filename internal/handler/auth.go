package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/model"
	"github.com/iliyamo/roomescape-reservation/internal/service"
	"github.com/iliyamo/roomescape-reservation/internal/utils"
)

type MemberService interface {
	Register(ctx context.Context, in service.RegisterInput) (model.Member, error)
	Login(ctx context.Context, email, password string) (utils.AccessToken, model.Member, error)
	Member(ctx context.Context, id int64) (model.Member, error)
	ListMembers(ctx context.Context) ([]model.Member, error)
}

// AuthHandler bundles the account endpoints.
type AuthHandler struct {
	svc          MemberService
	secureCookie bool
}

// NewAuthHandler returns an AuthHandler.  secureCookie marks the token
// cookie Secure and should be set outside local development.
func NewAuthHandler(svc MemberService, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

// Register creates a USER account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	m, err := h.svc.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMemberResp(m))
}

// Login returns the access token in the body and stores it in the token
// cookie for browser clients.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tok, m, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(tok.Token, tok.Exp))
	return c.JSON(http.StatusOK, loginResp{
		Member:      toMemberResp(m),
		AccessToken: tok.Token,
		ExpiresAt:   tok.Exp.Format(time.RFC3339),
	})
}

// Logout expires the token cookie.  Bearer tokens stay valid until they
// expire on their own.
func (h *AuthHandler) Logout(c echo.Context) error {
	ck := h.cookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated member.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.MemberID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	m, err := h.svc.Member(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMemberResp(m))
}

// Members lists every account for administrators.
func (h *AuthHandler) Members(c echo.Context) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	ms, err := h.svc.ListMembers(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(ms, toMemberResp))
}

func (h *AuthHandler) cookie(value string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
