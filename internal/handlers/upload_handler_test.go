package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func uploadRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func newUploadServer(maxBytes int64) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	NewUploadHandler(maxBytes).RegisterUploadRoutes(e.Group(""), pass)
	return e
}

func TestUploadDetectsMimeType(t *testing.T) {
	e := newUploadServer(1024)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "file", pngHeader))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["image"], "data:image/png;base64,"), body["image"])
}

func TestUploadRejectsLargeFiles(t *testing.T) {
	e := newUploadServer(8)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "file", pngHeader))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"File too large"}`, rec.Body.String())
}

func TestUploadRequiresFile(t *testing.T) {
	e := newUploadServer(1024)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, uploadRequest(t, "other", pngHeader))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"file is required"}`, rec.Body.String())
}
