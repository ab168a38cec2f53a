package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/services"
)

type stubScreeningRepo struct {
	screening *models.Screening
}

func (s *stubScreeningRepo) Create(screening *models.Screening) error { return nil }

func (s *stubScreeningRepo) FindByID(id uuid.UUID) (*models.Screening, error) {
	if s.screening == nil || s.screening.ID != id {
		return nil, fmt.Errorf("screening not found")
	}
	return s.screening, nil
}

func (s *stubScreeningRepo) Claim(id uuid.UUID) (bool, error) { return true, nil }

func (s *stubScreeningRepo) UpdateStatus(id uuid.UUID, status models.ScreeningStatus) error {
	return nil
}

func (s *stubScreeningRepo) UpdateReport(id uuid.UUID, report models.ScreeningReport) error {
	return nil
}

func (s *stubScreeningRepo) UpdateError(id uuid.UUID, errorMsg string) error { return nil }

func (s *stubScreeningRepo) FindPendingJobs(limit int) ([]models.Screening, error) {
	return nil, nil
}

func newResultApp(repo *stubScreeningRepo) *fiber.App {
	app := fiber.New()
	handler := NewResultHandler(repo, services.NewReportDispatcher(nil, nil))
	app.Get("/result/:id", handler.HandleGetResult)
	return app
}

func strPtr(s string) *string { return &s }

func TestHandleGetResult_Completed(t *testing.T) {
	score := 82
	screening := &models.Screening{
		ID:         uuid.New(),
		Status:     models.StatusCompleted,
		FitScore:   &score,
		Summary:    strPtr("- strong match"),
		Action:     strPtr("Interview"),
		EmailDraft: strPtr("Hello"),
	}

	app := newResultApp(&stubScreeningRepo{screening: screening})

	req := httptest.NewRequest(http.MethodGet, "/result/"+screening.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ResultResponse
	decodeBody(t, resp.Body, &body)

	assert.Equal(t, string(models.StatusCompleted), body.Status)
	require.NotNil(t, body.Report)
	require.NotNil(t, body.Report.FitScore)
	assert.Equal(t, 82, *body.Report.FitScore)
	assert.False(t, body.Report.Degraded)

	require.Len(t, body.Sections, 4)
	assert.Equal(t, "Score", body.Sections[0].Name)
	assert.Equal(t, "82", body.Sections[0].Value)
	assert.Equal(t, "Email Draft", body.Sections[3].Name)
}

func TestHandleGetResult_DegradedReport(t *testing.T) {
	screening := &models.Screening{
		ID:      uuid.New(),
		Status:  models.StatusCompleted,
		Summary: strPtr(models.NotProvided),
		Action:  strPtr("Hold"),
	}

	app := newResultApp(&stubScreeningRepo{screening: screening})

	req := httptest.NewRequest(http.MethodGet, "/result/"+screening.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body models.ResultResponse
	decodeBody(t, resp.Body, &body)

	require.NotNil(t, body.Report)
	assert.Nil(t, body.Report.FitScore)
	assert.True(t, body.Report.Degraded)
}

func TestHandleGetResult_Failed(t *testing.T) {
	screening := &models.Screening{
		ID:           uuid.New(),
		Status:       models.StatusFailed,
		ErrorMessage: strPtr("model invocation failed: connection refused"),
	}

	app := newResultApp(&stubScreeningRepo{screening: screening})

	req := httptest.NewRequest(http.MethodGet, "/result/"+screening.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ResultResponse
	decodeBody(t, resp.Body, &body)

	assert.Nil(t, body.Report)
	require.NotNil(t, body.ErrorMessage)
	assert.Contains(t, *body.ErrorMessage, "model invocation failed")
}

func TestHandleGetResult_InvalidID(t *testing.T) {
	app := newResultApp(&stubScreeningRepo{})

	req := httptest.NewRequest(http.MethodGet, "/result/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetResult_NotFound(t *testing.T) {
	app := newResultApp(&stubScreeningRepo{})

	req := httptest.NewRequest(http.MethodGet, "/result/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func decodeBody(t *testing.T, body io.Reader, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, target))
}
