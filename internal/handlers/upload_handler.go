package handlers

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/repositories"
	"github.com/gvarshith95/Capstone-Project/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload accepts the two screening inputs as multipart fields "jd" and
// "resume". Either or both may be present; each may be a .pdf or .txt file.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	var responses []models.UploadResponse

	for _, role := range []string{models.RoleJobDescription, models.RoleResume} {
		files, exists := form.File[role]
		if !exists || len(files) == 0 {
			continue
		}

		response, err := h.saveDocument(files[0], role)
		if err != nil {
			return err
		}

		responses = append(responses, *response)
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No valid files uploaded. Please upload 'jd' and/or 'resume' as PDF or TXT files.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Files uploaded successfully",
		"documents": responses,
	})
}

func (h *UploadHandler) saveDocument(file *multipart.FileHeader, role string) (*models.UploadResponse, error) {
	if file.Size > h.maxFileSize {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s file too large. Max size: %d bytes", role, h.maxFileSize))
	}

	filename, filePath, kind, err := h.storageService.SaveFile(file, role)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("failed to save %s file: %v", role, err))
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: file.Filename,
		Role:             role,
		MediaKind:        kind,
		FilePath:         filePath,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return nil, fiber.NewError(fiber.StatusInternalServerError,
			fmt.Sprintf("failed to save %s document record: %v", role, err))
	}

	return &models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		Role:         doc.Role,
		MediaKind:    string(doc.MediaKind),
	}, nil
}
