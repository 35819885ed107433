package handlers

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"empylo_backend/internal/config"
	"empylo_backend/internal/imageprocessor"
	"empylo_backend/internal/logger"
	"empylo_backend/internal/storage"
	"empylo_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var uploadProcessor = imageprocessor.NewProcessor(imageprocessor.MaxDimension, 0)

// uploadedImage is a stored blob whose owning database row has not been
// written yet. Discard compensates when that write fails.
type uploadedImage struct {
	URL   string
	path  string
	store storage.Storage
}

// URLPtr is nil-safe so handlers can pass it straight to services when
// no file was uploaded.
func (u *uploadedImage) URLPtr() *string {
	if u == nil {
		return nil
	}
	return &u.URL
}

// Discard best-effort deletes the blob after a failed database write so
// the object store does not accumulate orphans.
func (u *uploadedImage) Discard(c *gin.Context) {
	if u == nil {
		return
	}
	if err := u.store.Delete(c.Request.Context(), u.path); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to delete orphaned upload", err, "path", u.path)
	}
}

// saveImage validates and stores an uploaded image. A missing file is
// not an error; the caller gets nil.
func saveImage(c *gin.Context, store storage.Storage, cfg *config.Config, field, dir string) (*uploadedImage, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	if fileHeader.Size > cfg.Upload.MaxSize {
		return nil, apperrors.NewBadRequestError("File too large")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrInvalidFileType
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer file.Close()

	var body io.Reader = file
	if normalized, normalizedType, err := uploadProcessor.Normalize(file); err == nil {
		body = normalized
		contentType = normalizedType
	} else {
		// Store undecodable but allowed content as-is.
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	path := dir + "/" + uuid.NewString() + extensionFor(fileHeader, contentType)
	if err := store.Save(c.Request.Context(), path, body, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := store.GetURL(c.Request.Context(), path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &uploadedImage{URL: url, path: path, store: store}, nil
}

func allowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

func extensionFor(fileHeader *multipart.FileHeader, contentType string) string {
	if ext := filepath.Ext(fileHeader.Filename); ext != "" {
		return strings.ToLower(ext)
	}
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
