package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

// UploadHandler turns uploaded files into data URLs that can be stored on a post or profile
type UploadHandler struct {
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler accepting files up to maxBytes
func NewUploadHandler(maxBytes int64) *UploadHandler {
	return &UploadHandler{maxBytes: maxBytes}
}

// RegisterUploadRoutes registers the upload route
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/upload", h.Upload, requireAuth)
}

// Upload reads the multipart "file" field and returns {"image": "data:<mime>;base64,..."}
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "File too large")
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// fh.Size comes from the client, so the limit is enforced on the bytes read too.
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > h.maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "File too large")
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"image": "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
}
