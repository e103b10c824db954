package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadCompanyDocument stores a company-wide document file.
	UploadCompanyDocument(ctx context.Context, file io.Reader, filename string) (string, error)

	// UploadPersonalDocument stores an employee credential scan.
	UploadPersonalDocument(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedDocumentExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

func documentContentType(filename string) (ext, contentType string, err error) {
	ext = strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedDocumentExts[ext]
	if !ok {
		return "", "", fmt.Errorf("invalid file type: only pdf, doc, docx, jpg, jpeg, png allowed")
	}
	return ext, contentType, nil
}

func (s *fileServiceImpl) UploadCompanyDocument(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext, contentType, err := documentContentType(filename)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	path := filepath.Join("documents", newFilename)

	return s.storage.Upload(ctx, file, path, contentType)
}

func (s *fileServiceImpl) UploadPersonalDocument(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext, contentType, err := documentContentType(filename)
	if err != nil {
		return "", err
	}

	newFilename := fmt.Sprintf("%s-%s%s", userID, uuid.New().String(), ext)
	path := filepath.Join("personal", userID, newFilename)

	return s.storage.Upload(ctx, file, path, contentType)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
