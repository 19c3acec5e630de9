package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/metrics"
)

type createFolderRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	ParentID string `json:"parentId" validate:"omitempty,uuid4"`
}

// handleCreateFolder creates a folder, optionally inside a parent folder.
// POST /api/folders
func (s *Server) handleCreateFolder(c *fiber.Ctx) error {
	var req createFolderRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		id, err := uuid.Parse(req.ParentID)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "invalid parent id")
		}
		parentID = &id
	}

	folder, err := s.store.CreateFolder(c.Context(), owner(c), req.Name, parentID)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(folder)
}

// handleDeleteFolder removes a folder and its whole subtree, then releases
// the external objects of every deleted file.
// DELETE /api/folders/:id
func (s *Server) handleDeleteFolder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid folder id")
	}

	result, err := s.store.DeleteFolderTree(c.Context(), owner(c), id)
	if err != nil {
		return s.sendStoreError(c, err)
	}
	metrics.RecordCascade(result.FoldersRemoved, result.FilesRemoved)

	// The records are gone; object release is best effort. A failed delete
	// leaves an orphaned object, never a dangling record.
	s.releaseObjects(c.Context(), result.ExternalRefs)

	return c.JSON(fiber.Map{
		"foldersRemoved": result.FoldersRemoved,
		"filesRemoved":   result.FilesRemoved,
	})
}

// releaseObjects deletes external objects after their records are removed.
func (s *Server) releaseObjects(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := s.objects.Delete(ctx, ref); err != nil {
			logger.Warn("failed to release object %s: %v", ref, err)
		}
	}
}
