package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, field, filename, content string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadStoresFileUnderRandomName(t *testing.T) {
	h := NewUploadHandler(t.TempDir())
	c, rec := multipartUpload(t, "image", "before.jpg", "fake-jpeg-bytes")

	require.NoError(t, h.Upload(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool   `json:"success"`
		ImageURL string `json:"imageUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, strings.HasSuffix(resp.ImageURL, ".jpg"))
	assert.NotContains(t, resp.ImageURL, "before")

	stored := filepath.Join(h.Dir, filepath.Base(resp.ImageURL))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(data))
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	h := NewUploadHandler(t.TempDir())
	c, rec := multipartUpload(t, "image", "payload.exe", "nope")

	require.NoError(t, h.Upload(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeBlocksPathTraversal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.png"), []byte("png"), 0o644))
	h := NewUploadHandler(dir)

	c, rec := newTestContext(http.MethodGet, "/", "", 0)
	c.SetParamNames("filename")
	c.SetParamValues("../../etc/passwd")
	require.NoError(t, h.Serve(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/", "", 0)
	c.SetParamNames("filename")
	c.SetParamValues("ok.png")
	require.NoError(t, h.Serve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
}
