package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vivero/pkg/apperror"
)

// WriteError maps service errors to HTTP responses:
// validation → 400, integrity → 409, not found → 404, anything else → 500.
func WriteError(c echo.Context, err error) error {
	var ve *apperror.ValidationError
	var ie *apperror.IntegrityError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "entity": ve.Entity, "fields": ve.Fields})
	case errors.As(err, &ie):
		return c.JSON(http.StatusConflict, echo.Map{"error": ie.Error(), "constraint": ie.Constraint, "target": ie.Target})
	case errors.Is(err, apperror.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func ParseUint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}
