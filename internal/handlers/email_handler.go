package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/repositories"
	"github.com/gvarshith95/Capstone-Project/internal/services"
)

type EmailHandler struct {
	screeningRepo repositories.ScreeningRepository
	dispatcher    *services.ReportDispatcher
}

func NewEmailHandler(screeningRepo repositories.ScreeningRepository, dispatcher *services.ReportDispatcher) *EmailHandler {
	return &EmailHandler{
		screeningRepo: screeningRepo,
		dispatcher:    dispatcher,
	}
}

// HandleSendEmail handles POST /result/:id/email. It sends the stored
// outreach draft to the given recipient; the screening result itself is
// never affected by the delivery outcome.
func (h *EmailHandler) HandleSendEmail(c *fiber.Ctx) error {
	idParam := c.Params("id")
	screeningID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	var req models.EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Recipient == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "recipient is required",
		})
	}

	screening, err := h.screeningRepo.FindByID(screeningID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening not found",
		})
	}

	if screening.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Screening has no report yet",
		})
	}

	report := ReportFromScreening(screening)
	if strings.TrimSpace(report.EmailDraft) == "" || report.EmailDraft == models.NotProvided {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Screening report has no email draft",
		})
	}

	subject := req.Subject
	if subject == "" {
		subject = "Regarding your application"
	}

	result := h.dispatcher.Deliver(c.Context(), req.Recipient, subject, report)

	return c.JSON(models.EmailResponse{
		Delivered: result.Delivered,
		Status:    result.Status,
	})
}
