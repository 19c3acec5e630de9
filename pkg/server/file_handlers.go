package server

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/marmos91/pixvault/internal/logger"
	"github.com/marmos91/pixvault/pkg/metrics"
)

type createFileRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	ExternalRef string `json:"externalRef" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	FolderID    string `json:"folderId" validate:"omitempty,uuid4"`
}

// handleCreateFile records an already-uploaded object.
// POST /api/files
func (s *Server) handleCreateFile(c *fiber.Ctx) error {
	var req createFileRequest
	if err := c.BodyParser(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return sendError(c, fiber.StatusBadRequest, err.Error())
	}

	folderID, err := parseOptionalID(req.FolderID)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid folder id")
	}

	file, err := s.store.CreateFile(c.Context(), owner(c), req.Name, req.ExternalRef, req.URL, folderID)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(file)
}

// handleUploadFile uploads image bytes to object storage and records the
// file in one request. Record creation is the commit point: a committed
// object whose record fails stays in storage as an orphan (logged, not
// rolled back).
// POST /api/files/upload (multipart: "file" part, optional "name" and
// "folderId" fields)
func (s *Server) handleUploadFile(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "file part is required")
	}

	name := c.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	folderID, err := parseOptionalID(c.FormValue("folderId"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid folder id")
	}

	src, err := header.Open()
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "unreadable file part")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "unreadable file part")
	}

	contentType := header.Header.Get("Content-Type")
	result, err := s.objects.Upload(c.Context(), name, contentType, data)
	if err != nil {
		metrics.RecordUpload(false, 0)
		return s.sendStoreError(c, err)
	}

	file, err := s.store.CreateFile(c.Context(), owner(c), name, result.ExternalRef, result.URL, folderID)
	if err != nil {
		metrics.RecordUpload(false, 0)
		// The object stays behind as an orphan; the record never existed
		logger.Warn("upload of %s left orphaned object %s: %v", name, result.ExternalRef, err)
		return s.sendStoreError(c, err)
	}
	metrics.RecordUpload(true, len(data))

	return c.Status(fiber.StatusCreated).JSON(file)
}

// handleDeleteFile removes a file record, then releases its object.
// DELETE /api/files/:id
func (s *Server) handleDeleteFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, err := s.store.DeleteFile(c.Context(), owner(c), id)
	if err != nil {
		return s.sendStoreError(c, err)
	}

	// Record first, object second. The record is gone either way; a failed
	// release orphans the object and reports the storage error.
	if err := s.objects.Delete(c.Context(), file.ExternalRef); err != nil {
		logger.Warn("failed to release object %s: %v", file.ExternalRef, err)
		return s.sendStoreError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// parseOptionalID parses an optional UUID form/JSON value. Empty means nil.
func parseOptionalID(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
