package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/storage"
)

// MediaUploader is the slice of the media store the upload endpoint needs.
type MediaUploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// UploadHandler relays multipart uploads to the external media host.
type UploadHandler struct {
	Media MediaUploader
}

func NewUploadHandler(m MediaUploader) *UploadHandler { return &UploadHandler{Media: m} }

type uploadedFile struct {
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	ResourceType string `json:"resourceType"`
}

// Upload forwards every "files" part to the media host and returns the
// public URLs. The batch is all-or-nothing: the first provider error fails
// the whole request, and files already stored are not rolled back.
func (h *UploadHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No files provided"})
	}
	files := form.File["files"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No files provided"})
	}

	ctx := c.Request().Context()
	out := make([]uploadedFile, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			c.Logger().Errorf("upload open %q: %v", fh.Filename, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Upload failed"})
		}

		contentType := fh.Header.Get("Content-Type")
		url, err := h.Media.Upload(ctx, fh.Filename, contentType, src)
		_ = src.Close()
		if err != nil {
			c.Logger().Errorf("upload %q: %v", fh.Filename, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Upload failed"})
		}

		out = append(out, uploadedFile{
			OriginalName: fh.Filename,
			URL:          url,
			ResourceType: storage.ClassifyResourceType(contentType),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"files": out})
}
