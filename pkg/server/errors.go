package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/drive"
)

// statusForCode maps drive store error codes to HTTP statuses.
func statusForCode(code drive.ErrorCode) int {
	switch code {
	case drive.ErrInvalidArgument:
		return fiber.StatusBadRequest
	case drive.ErrUnauthenticated:
		return fiber.StatusUnauthorized
	case drive.ErrForbidden:
		return fiber.StatusForbidden
	case drive.ErrNotFound:
		return fiber.StatusNotFound
	case drive.ErrAlreadyExists:
		return fiber.StatusConflict
	case drive.ErrExternalService:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// sendStoreError translates a drive store error into a JSON error response.
func (s *Server) sendStoreError(c *fiber.Ctx, err error) error {
	status := statusForCode(drive.CodeOf(err))
	if status == fiber.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Method(), c.Path(), err)
		return sendError(c, status, "internal server error")
	}
	return sendError(c, status, err.Error())
}

// sendError writes a JSON error body with the given status.
func sendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// handleError is the fiber error handler for errors escaping handlers.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		return sendError(c, fiberErr.Code, fiberErr.Message)
	}
	logger.Error("%s %s failed: %v", c.Method(), c.Path(), err)
	return sendError(c, fiber.StatusInternalServerError, "internal server error")
}
