package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler stores workout photos on local disk and serves them
// back. Stored names are random UUIDs so uploads can never collide or
// leak the original filename.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler { return &UploadHandler{Dir: dir} }

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type uploadResp struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type uploadMultiResp struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ImageURLs []string `json:"imageUrls"`
}

// Upload accepts a single multipart file under the "image" field and
// returns the public path it was stored at.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResp{Message: "image file is required"})
	}
	url, err := h.saveOne(fh)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, uploadResp{Message: he.Message.(string)})
		}
		return c.JSON(http.StatusInternalServerError, uploadResp{Message: "store file failed"})
	}
	return c.JSON(http.StatusOK, uploadResp{Success: true, Message: "uploaded", ImageURL: url})
}

// UploadMultiple accepts several files under the "images" field. The
// whole batch fails on the first bad file so callers never get a
// partial result.
func (h *UploadHandler) UploadMultiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadMultiResp{Message: "multipart form required"})
	}
	files := form.File["images"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, uploadMultiResp{Message: "at least one image is required"})
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.saveOne(fh)
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				return c.JSON(he.Code, uploadMultiResp{Message: he.Message.(string)})
			}
			return c.JSON(http.StatusInternalServerError, uploadMultiResp{Message: "store file failed"})
		}
		urls = append(urls, url)
	}
	return c.JSON(http.StatusOK, uploadMultiResp{Success: true, Message: "uploaded", ImageURLs: urls})
}

func (h *UploadHandler) saveOne(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unsupported image type")
	}
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", err
	}

	stored := uuid.NewString() + ext
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(h.Dir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/api/exercise-records/images/" + stored, nil
}

// Serve streams a stored image back. filepath.Base strips any path
// segments so the parameter cannot escape the upload directory.
func (h *UploadHandler) Serve(c echo.Context) error {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == ".." || name == "/" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid filename"})
	}
	path := filepath.Join(h.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "image not found"})
	}
	return c.File(path)
}
