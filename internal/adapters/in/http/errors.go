package http

import (
	"errors"
	"log/slog"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error envelope for all endpoints.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respond maps application errors to HTTP statuses. Business failures carry
// their message to the client; infrastructure failures are logged in full and
// surfaced as an opaque 500, including compensation-incomplete outcomes whose
// details belong in dead letters, not responses.
func respond(c echo.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, errs.ErrCompensationIncomplete):
		logger.ErrorContext(c.Request().Context(), "request left orphaned resources", "error", err)
		return internal(c)
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Code: http.StatusNotFound, Message: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Code: http.StatusConflict, Message: err.Error()})
	case errors.Is(err, errs.ErrInvalidState):
		return c.JSON(http.StatusUnprocessableEntity,
			errorResponse{Code: http.StatusUnprocessableEntity, Message: err.Error()})
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: err.Error()})
	default:
		logger.ErrorContext(c.Request().Context(), "request failed", "error", err)
		return internal(c)
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: message})
}

func internal(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, errorResponse{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}
