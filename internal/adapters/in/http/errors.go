package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"logistics/internal/adapters/out/security"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error returned by a use case onto an HTTP status code.
func StatusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, commands.ErrInvalidCredentials), errors.Is(err, security.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict), errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrDistanceUnknown):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders handler errors as Error bodies. Server errors are logged and
// their details are not sent to the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := StatusFor(err)
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message = fmt.Sprint(httpErr.Message)
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			message = http.StatusText(code)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, Error{Code: code, Message: message})
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
