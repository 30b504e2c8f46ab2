package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	var healthy bool
	e := newEcho()
	e.GET("/healthz", Health(pingFunc(func(ctx context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("connection refused")
	}), discardLogger()))
	e.GET("/livez", Health(nil, discardLogger()))

	rec := do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	healthy = true
	rec = do(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/livez", "", "").Code)
}
