package services

import (
	"context"
	"fmt"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

// Renderer is the presentation boundary. The service only decides which
// named sections exist; layout belongs to the collaborator.
type Renderer interface {
	Render(sections []models.ReportSection) error
}

// DeliveryResult is the boolean-ish outcome of an outreach email send.
type DeliveryResult struct {
	Delivered bool
	Status    string
}

// ReportDispatcher hands a finished ScreeningReport to the presentation and
// delivery collaborators. It maps fields onto collaborator calls and holds no
// screening logic of its own.
type ReportDispatcher struct {
	renderer Renderer
	mailer   Mailer
}

func NewReportDispatcher(renderer Renderer, mailer Mailer) *ReportDispatcher {
	return &ReportDispatcher{
		renderer: renderer,
		mailer:   mailer,
	}
}

// Sections maps a report onto the four named presentation sections.
func (d *ReportDispatcher) Sections(report models.ScreeningReport) []models.ReportSection {
	score := models.NotProvided
	if report.FitScore != nil {
		score = fmt.Sprintf("%d", *report.FitScore)
	}

	return []models.ReportSection{
		{Name: "Score", Value: score},
		{Name: "Summary", Value: report.Summary},
		{Name: "Action", Value: report.Action},
		{Name: "Email Draft", Value: report.EmailDraft},
	}
}

// Present sends the report's sections to the renderer, if one is attached.
func (d *ReportDispatcher) Present(report models.ScreeningReport) error {
	if d.renderer == nil {
		return nil
	}
	return d.renderer.Render(d.Sections(report))
}

// Deliver sends the report's email draft to a recipient. Delivery failures
// are folded into the result status; they never invalidate the report itself.
func (d *ReportDispatcher) Deliver(ctx context.Context, recipient, subject string, report models.ScreeningReport) DeliveryResult {
	if d.mailer == nil {
		return DeliveryResult{Delivered: false, Status: "mail delivery is not configured"}
	}

	if err := d.mailer.Send(ctx, recipient, subject, report.EmailDraft); err != nil {
		return DeliveryResult{Delivered: false, Status: err.Error()}
	}

	return DeliveryResult{Delivered: true, Status: "sent"}
}
