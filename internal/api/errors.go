package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/contract-harness/internal/models"
	"github.com/rxtech-lab/contract-harness/internal/services"
	"github.com/rxtech-lab/contract-harness/internal/utils"
)

const chainFailureMessage = "chain operation failed"

// handleError shapes every failure as an ErrorResponse. Chain failures are
// logged in full but only a generic message reaches the client.
func (s *APIServer) handleError(c *fiber.Ctx, err error) error {
	requestID, _ := c.Locals("requestid").(string)

	status, message := classifyError(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			"requestId", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"query", string(c.Request().URI().QueryString()),
			"error", err,
		)
	} else {
		s.logger.Warn("request rejected", "requestId", requestID, "path", c.Path(), "status", status, "error", err)
	}

	return c.Status(status).JSON(models.ErrorResponse{
		Success:   false,
		Error:     message,
		RequestID: requestID,
	})
}

func classifyError(err error) (int, string) {
	var validationErrors validator.ValidationErrors
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErrors):
		return fiber.StatusBadRequest, formatValidationErrors(validationErrors)
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, utils.ErrInvalidAmount):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUnknownContract):
		return fiber.StatusNotFound, err.Error()
	default:
		return fiber.StatusInternalServerError, chainFailureMessage
	}
}

func formatValidationErrors(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("query parameter %s is required", fe.Field()))
		case "eth_addr":
			messages = append(messages, fmt.Sprintf("query parameter %s must be a 0x-prefixed 20-byte hex address", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("query parameter %s is invalid", fe.Field()))
		}
	}
	return strings.Join(messages, "; ")
}
