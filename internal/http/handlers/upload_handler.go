package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadbound/internal/bunny"
	applog "threadbound/internal/log"
)

const maxUploadBytes = 10 << 20

type UploadHandler struct {
	// CDN is nil when Bunny credentials are absent; uploads then report
	// unavailable.
	CDN *bunny.Client
}

// POST /api/bunny-upload — multipart "image" field, image/* only, <=10MB.
func (h *UploadHandler) Image(c *fiber.Ctx) error {
	if h.CDN == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "image uploads are not available"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing image field"})
	}
	if fh.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image exceeds 10MB"})
	}
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be an image"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not read upload"})
	}
	defer f.Close()

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	url, err := h.CDN.Upload(c.Context(), "products/"+filename, f, contentType)
	if err != nil {
		applog.Error(c, "upload.bunny.fail", err, map[string]any{"filename": fh.Filename})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "upload failed"})
	}

	applog.Audit(c, "upload.bunny.ok", map[string]any{"url": url})
	return c.JSON(fiber.Map{"success": true, "url": url, "filename": filename})
}
