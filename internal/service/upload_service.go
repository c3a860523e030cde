package service

import (
	"context"
	"mime/multipart"

	"github.com/soryntech/portfolio-api/internal/upstream"
	apperrors "github.com/soryntech/portfolio-api/pkg/util"
)

// MaxUploadBytes is the upload size ceiling (32 MiB).
const MaxUploadBytes = 32 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// UploadService validates image uploads and forwards them to the image host.
type UploadService struct {
	imgbb *upstream.ImgBBClient
}

// NewUploadService builds the service.
func NewUploadService(imgbb *upstream.ImgBBClient) *UploadService {
	return &UploadService{imgbb: imgbb}
}

// Upload checks the file against the size ceiling and MIME allow-list, then
// streams it to the image host and returns the public URL. Rejections
// happen before any upstream call.
func (s *UploadService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxUploadBytes {
		return "", apperrors.NewPayloadTooLarge("File too large")
	}

	contentType := file.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[contentType]; !ok {
		return "", apperrors.NewInvalidRequest("Invalid file type")
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer src.Close()

	return s.imgbb.Upload(ctx, file.Filename, contentType, src)
}
