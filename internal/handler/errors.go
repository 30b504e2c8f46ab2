package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/roomescape-reservation/internal/lib/logger/sl"
	"github.com/iliyamo/roomescape-reservation/internal/middleware"
	"github.com/iliyamo/roomescape-reservation/internal/service"
)

// msgUnexpected is the only detail a client ever sees for a 500.
const msgUnexpected = "unexpected error occurred"

// ErrorHandler writes every error returned by a handler or middleware as
// {"message": ...}.  Domain failures are 400 with the failure text,
// *echo.HTTPError keeps its own code, and anything else is logged and
// answered with a generic 500.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := http.StatusInternalServerError, msgUnexpected

		var he *echo.HTTPError
		switch {
		case service.DomainError(err) != nil:
			code, msg = http.StatusBadRequest, service.DomainError(err).Error()
		case errors.As(err, &he):
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.String("request_id", middleware.RequestID(c)),
				sl.Err(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]string{"message": msg})
		}
		if err != nil {
			log.Error("failed to write error response", sl.Err(err))
		}
	}
}
