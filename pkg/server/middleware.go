package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marmos91/pixvault/pkg/metrics"
)

// ownerKey is the fiber locals key holding the authenticated owner id.
const ownerKey = "ownerID"

// requireAuth verifies the session cookie and stores the owner id in locals.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return sendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return sendError(c, fiber.StatusUnauthorized, "invalid or expired session")
	}

	c.Locals(ownerKey, userID)
	return c.Next()
}

// owner returns the authenticated owner id set by requireAuth.
func owner(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(ownerKey).(uuid.UUID)
	return id
}

// metricsMiddleware records request count and duration per route.
func (s *Server) metricsMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	// Use the route pattern, not the raw path, to keep label cardinality low
	path := c.Route().Path
	metrics.RecordHTTPRequest(c.Method(), path, c.Response().StatusCode(), time.Since(start))
	return err
}

// setSessionCookie issues the session cookie after register/login.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(s.tokens.TTL()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
