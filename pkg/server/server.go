// Package server exposes the pixvault HTTP API.
//
// The API mirrors the flows the web client drives: session handling
// (register, login, logout), the dashboard tree, folder and file creation,
// and deletions including the recursive folder cascade. All drive routes
// require a session cookie; ownership of every touched record is enforced
// by the drive store, the handlers only translate errors to HTTP statuses.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/auth"
	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/marmos91/pixvault/pkg/objectstore"
)

// sessionCookie is the cookie carrying the signed session token.
const sessionCookie = "token"

// Config contains the dependencies and settings for the HTTP server.
type Config struct {
	// Store is the drive store holding users, folders and files
	Store drive.Store

	// Objects is the external object store holding image bytes
	Objects objectstore.ObjectStore

	// Tokens signs and verifies session tokens
	Tokens *auth.TokenManager

	// BcryptCost is the password hashing work factor (0 uses the bcrypt default)
	BcryptCost int

	// BodyLimit caps request body size in bytes (0 uses 32MB)
	BodyLimit int
}

// Server is the pixvault HTTP API server.
type Server struct {
	app     *fiber.App
	store   drive.Store
	objects objectstore.ObjectStore
	tokens  *auth.TokenManager
	cost    int
}

// New creates the server and registers all routes.
func New(cfg Config) *Server {
	bodyLimit := cfg.BodyLimit
	if bodyLimit == 0 {
		bodyLimit = 32 * 1024 * 1024
	}

	s := &Server{
		store:   cfg.Store,
		objects: cfg.Objects,
		tokens:  cfg.Tokens,
		cost:    cfg.BcryptCost,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(s.metricsMiddleware)

	api := s.app.Group("/api")

	// Session routes (no auth required)
	api.Post("/register", s.handleRegister)
	api.Post("/login", s.handleLogin)
	api.Post("/logout", s.handleLogout)

	// Drive routes (session cookie required)
	authed := api.Group("", s.requireAuth)
	authed.Get("/dashboard", s.handleDashboard)
	authed.Post("/folders", s.handleCreateFolder)
	authed.Delete("/folders/:id", s.handleDeleteFolder)
	authed.Post("/files", s.handleCreateFile)
	authed.Post("/files/upload", s.handleUploadFile)
	authed.Delete("/files/:id", s.handleDeleteFile)

	return s
}

// Listen starts serving on addr. It blocks until the server is shut down.
func (s *Server) Listen(addr string) error {
	logger.Info("HTTP server listening on %s", addr)
	return s.app.Listen(addr)
}

// ShutdownWithTimeout gracefully drains in-flight requests.
func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
