// Package handler contains the HTTP handlers of the staff API.  The
// handlers bind and validate request shapes and delegate all business
// rules to the repository and service layers.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vilkasoft/carehome-backend/internal/repository"
)

// writeError maps the error taxonomy onto HTTP responses:
// ValidationError -> 400 with the full problem list, ConflictError and
// InvalidStateError -> 409, not-found sentinels -> 404, everything
// else -> 500.
func writeError(c echo.Context, err error) error {
	var ve *repository.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":    "validation_failed",
			"problems": ve.Problems,
		})
	}
	var ce *repository.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, echo.Map{"error": ce.Msg})
	}
	var ise *repository.InvalidStateError
	if errors.As(err, &ise) {
		return c.JSON(http.StatusConflict, echo.Map{"error": ise.Msg})
	}
	switch {
	case errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrBedNotFound),
		errors.Is(err, repository.ErrContractNotFound),
		errors.Is(err, repository.ErrResidentNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
