package api

import (
	"ezypc-storefront/internal/common/errors"

	"github.com/gofiber/fiber/v2"
)

type errorResponse struct {
	Error *errors.StandardError `json:"error"`
}

// statusFor maps error codes onto HTTP statuses. Upstream generation failures
// are reported as bad gateway; a missing API key as service unavailable.
func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeConfiguration:
		return fiber.StatusServiceUnavailable
	case errors.ErrCodeTransport,
		errors.ErrCodeEmptyResponse,
		errors.ErrCodeMalformedResponse,
		errors.ErrCodeInvalidShape,
		errors.ErrCodeNoResult:
		return fiber.StatusBadGateway
	case errors.ErrCodeTimeout:
		return fiber.StatusGatewayTimeout
	case errors.ErrCodeInvalidInput, errors.ErrCodeUnknownUseCase:
		return fiber.StatusBadRequest
	case errors.ErrCodePartNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) respondError(c *fiber.Ctx, err error) error {
	stdErr := errors.FromError(err)
	status := statusFor(stdErr.Code)

	fields := map[string]interface{}{
		"path":      c.Path(),
		"errorCode": string(stdErr.Code),
		"status":    status,
		"details":   stdErr.Details,
	}
	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request error", fields)
	} else {
		s.logger.Info("request rejected", fields)
	}

	return c.Status(status).JSON(errorResponse{Error: stdErr})
}

func (s *Server) respondNoResult(c *fiber.Ctx, operation string) error {
	return s.respondError(c, errors.NewNoResultError(operation))
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    e.Code,
				"message": e.Message,
			},
		})
	}
	return s.respondError(c, err)
}
