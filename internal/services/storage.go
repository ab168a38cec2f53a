package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

type StorageService interface {
	SaveFile(file *multipart.FileHeader, role string) (string, string, models.MediaKind, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores an uploaded JD or resume and reports the media kind
// declared by its extension. Only .pdf and .txt uploads are accepted.
func (s *storageService) SaveFile(file *multipart.FileHeader, role string) (string, string, models.MediaKind, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))

	var kind models.MediaKind
	switch ext {
	case ".pdf":
		kind = models.MediaKindPDF
	case ".txt":
		kind = models.MediaKindText
	default:
		return "", "", "", fmt.Errorf("invalid file extension: %s (only .pdf and .txt are supported)", ext)
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", role, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, kind, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
