package server

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/auth"
	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/marmos91/pixvault/pkg/metrics"
)

// validate checks request payloads against struct tags.
var validate = validator.New()

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// handleRegister creates an account and opens a session.
// POST /api/register
func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := auth.HashPassword(req.Password, s.cost)
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.store.CreateUser(c.Context(), req.Name, email, hash)
	if err != nil {
		if drive.CodeOf(err) == drive.ErrAlreadyExists {
			return sendError(c, fiber.StatusConflict, "an account with this email already exists")
		}
		return s.sendStoreError(c, err)
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)

	logger.Info("account created: %s", user.ID)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// handleLogin verifies credentials and opens a session.
// POST /api/login
func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.store.FindUserByEmail(c.Context(), email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same answer for unknown email and wrong password
		metrics.RecordAuthAttempt(false)
		return sendError(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	metrics.RecordAuthAttempt(true)

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return err
	}
	s.setSessionCookie(c, token)

	return c.JSON(user)
}

// handleLogout closes the session.
// POST /api/logout
func (s *Server) handleLogout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"status": "ok"})
}
