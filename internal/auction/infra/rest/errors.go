package rest

import (
	"errors"

	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Code     string          `json:"code"`
	Category domain.Category `json:"category"`
}

func statusOf(err error) int {
	if errors.Is(err, domain.ErrUnauthorized) {
		return fiber.StatusForbidden
	}
	switch domain.CategoryOf(err) {
	case domain.CategoryTemporal:
		return fiber.StatusUnprocessableEntity
	case domain.CategoryOrdering, domain.CategoryTerminalState, domain.CategoryConflict:
		return fiber.StatusConflict
	case domain.CategoryIntegrity:
		return fiber.StatusBadRequest
	case domain.CategoryResource:
		return fiber.StatusPaymentRequired
	case domain.CategoryAuth:
		return fiber.StatusUnauthorized
	case domain.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "internal error"
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:    msg,
		Code:     domain.CodeOf(err),
		Category: domain.CategoryOf(err),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:    msg,
		Code:     "BadRequest",
		Category: domain.CategoryIntegrity,
	})
}
