package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/repositories"
	"github.com/gvarshith95/Capstone-Project/internal/services"
)

type ResultHandler struct {
	screeningRepo repositories.ScreeningRepository
	dispatcher    *services.ReportDispatcher
}

func NewResultHandler(screeningRepo repositories.ScreeningRepository, dispatcher *services.ReportDispatcher) *ResultHandler {
	return &ResultHandler{
		screeningRepo: screeningRepo,
		dispatcher:    dispatcher,
	}
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	screeningID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid screening ID format",
		})
	}

	screening, err := h.screeningRepo.FindByID(screeningID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening not found",
		})
	}

	response := models.ResultResponse{
		ID:     screening.ID.String(),
		Status: string(screening.Status),
	}

	if screening.Status == models.StatusCompleted {
		report := ReportFromScreening(screening)
		response.Report = &models.ReportData{
			FitScore:   report.FitScore,
			Summary:    report.Summary,
			Action:     report.Action,
			EmailDraft: report.EmailDraft,
			Degraded:   report.Degraded(),
		}
		response.Sections = h.dispatcher.Sections(report)
	}

	if screening.Status == models.StatusFailed && screening.ErrorMessage != nil {
		response.ErrorMessage = screening.ErrorMessage
	}

	return c.JSON(response)
}

// ReportFromScreening rebuilds the parsed report from its stored columns.
func ReportFromScreening(screening *models.Screening) models.ScreeningReport {
	report := models.ScreeningReport{
		FitScore: screening.FitScore,
	}

	if screening.Summary != nil {
		report.Summary = *screening.Summary
	}
	if screening.Action != nil {
		report.Action = *screening.Action
	}
	if screening.EmailDraft != nil {
		report.EmailDraft = *screening.EmailDraft
	}

	return report
}
