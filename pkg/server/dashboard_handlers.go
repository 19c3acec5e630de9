package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marmos91/pixvault/pkg/drive"
	"github.com/marmos91/pixvault/pkg/metrics"
)

// handleDashboard returns the owner's display name and assembled tree.
//
// The tree is derived from the flat records on every call; nothing about it
// is cached between requests.
// GET /api/dashboard
func (s *Server) handleDashboard(c *fiber.Ctx) error {
	ownerID := owner(c)

	user, err := s.store.GetUser(c.Context(), ownerID)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	folders, err := s.store.ListFolders(c.Context(), ownerID)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	files, err := s.store.ListFiles(c.Context(), ownerID)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	start := time.Now()
	tree, err := drive.Assemble(folders, files, drive.AssembleOptions{})
	if err != nil {
		return s.sendStoreError(c, err)
	}
	metrics.RecordTreeAssembly(time.Since(start))

	// An empty drive serializes as "items": [], not null
	if tree == nil {
		tree = []*drive.Node{}
	}

	return c.JSON(fiber.Map{
		"name":  user.Name,
		"items": tree,
	})
}
