package handler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/domain/service"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

const (
	maxProductImages    = 5
	productImagesFolder = "products"
)

// ImageUploader stores listing images sent as multipart "images" files.
type ImageUploader struct {
	fileService service.FileUploadService
	maxFileSize int64
}

// NewImageUploader accepts a nil fileService, in which case multipart uploads are rejected.
func NewImageUploader(fileService service.FileUploadService, maxFileSize int64) *ImageUploader {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	return &ImageUploader{
		fileService: fileService,
		maxFileSize: maxFileSize,
	}
}

// uploadProductImages returns the public URLs of the uploaded files, or nil for non-multipart requests.
func (u *ImageUploader) uploadProductImages(c echo.Context) ([]string, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.BadRequest("Invalid multipart form", err)
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxProductImages {
		return nil, errors.BadRequest(fmt.Sprintf("You can upload at most %d images", maxProductImages), nil)
	}
	if u == nil || u.fileService == nil {
		return nil, errors.BadRequest("Image upload is not configured", nil)
	}

	for _, file := range files {
		if err := u.check(file); err != nil {
			return nil, err
		}
	}

	ctx := c.Request().Context()
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := u.upload(ctx, file)
		if err != nil {
			u.discard(ctx, urls)
			return nil, errors.Internal("Failed to upload image", err)
		}
		urls = append(urls, url)
	}

	logger.Debug("Uploaded %d product images", len(urls))
	return urls, nil
}

func (u *ImageUploader) check(file *multipart.FileHeader) error {
	if file.Size > u.maxFileSize {
		const mb = 1024 * 1024
		return errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", (u.maxFileSize+mb-1)/mb), nil)
	}
	if !isAllowedFileType(imageContentType(file)) {
		return errors.BadRequest("Only image files are allowed", nil)
	}
	return nil
}

func (u *ImageUploader) upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return u.fileService.UploadFile(ctx, src, imageContentType(file), productImagesFolder, true)
}

// discard removes already stored images after a failed create. Failures are only logged.
func (u *ImageUploader) discard(ctx context.Context, urls []string) {
	if u == nil || u.fileService == nil {
		return
	}
	for _, url := range urls {
		if err := u.fileService.DeleteFile(ctx, url); err != nil {
			logger.Warn("Failed to delete uploaded image %s: %v", url, err)
		}
	}
}

func imageContentType(file *multipart.FileHeader) string {
	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		src, err := file.Open()
		if err != nil {
			return contentType
		}
		defer src.Close()

		head := make([]byte, 512)
		n, _ := src.Read(head)
		contentType = http.DetectContentType(head[:n])
	}
	return strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
}

func isAllowedFileType(fileType string) bool {
	allowedTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
	}

	for _, allowedType := range allowedTypes {
		if fileType == allowedType {
			return true
		}
	}

	return false
}
