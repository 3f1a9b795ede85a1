package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"honnef.co/go/smooth"
	"honnef.co/go/smooth/internal/feature"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, invalid_geometry, too_many_points, ...
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errTransform maps a failed transition to a response.
func errTransform(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, smooth.ErrInvalidGeometry), errors.Is(err, feature.ErrNotLineString):
		return newError(c, fiber.StatusUnprocessableEntity, "invalid_geometry", err.Error())
	case errors.Is(err, smooth.ErrTooManyPoints):
		return newError(c, fiber.StatusUnprocessableEntity, "too_many_points", err.Error())
	case errors.Is(err, smooth.ErrDegenerateCurve):
		return newError(c, fiber.StatusUnprocessableEntity, "degenerate_curve", err.Error())
	case errors.Is(err, smooth.ErrDisplayOnly):
		return newError(c, fiber.StatusConflict, "display_only", err.Error())
	case errors.Is(err, smooth.ErrUnknownStrategy):
		return errBadRequest(c, err.Error())
	default:
		return newError(c, fiber.StatusInternalServerError, "internal_error", err.Error())
	}
}
