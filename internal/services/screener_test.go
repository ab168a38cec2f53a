package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

type memScreeningRepo struct {
	screening *models.Screening
	statuses  []models.ScreeningStatus
	report    *models.ScreeningReport
	errorMsg  string
}

func (m *memScreeningRepo) Create(s *models.Screening) error { return nil }

func (m *memScreeningRepo) FindByID(id uuid.UUID) (*models.Screening, error) {
	if m.screening == nil {
		return nil, fmt.Errorf("screening not found")
	}
	return m.screening, nil
}

func (m *memScreeningRepo) Claim(id uuid.UUID) (bool, error) {
	if m.screening == nil || m.screening.Status != models.StatusQueued {
		return false, nil
	}
	m.screening.Status = models.StatusProcessing
	return true, nil
}

func (m *memScreeningRepo) UpdateStatus(id uuid.UUID, status models.ScreeningStatus) error {
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *memScreeningRepo) UpdateReport(id uuid.UUID, report models.ScreeningReport) error {
	m.report = &report
	return nil
}

func (m *memScreeningRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	m.errorMsg = errorMsg
	return nil
}

func (m *memScreeningRepo) FindPendingJobs(limit int) ([]models.Screening, error) {
	return nil, nil
}

type memDocRepo struct {
	docs map[uuid.UUID]*models.Document
}

func (m *memDocRepo) Create(document *models.Document) error { return nil }

func (m *memDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

func (m *memDocRepo) FindByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	for _, id := range ids {
		if doc, ok := m.docs[id]; ok {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

type stubGemini struct {
	response  string
	err       error
	prompt    string
	embedding []float32
}

func (s *stubGemini) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if s.embedding == nil {
		return nil, fmt.Errorf("embeddings unavailable")
	}
	return s.embedding, nil
}

type noopIndex struct{}

func (noopIndex) InitCollection() error { return nil }
func (noopIndex) UpsertChunk(ctx context.Context, docID, docType, text string, embedding []float32, meta map[string]interface{}) error {
	return nil
}
func (noopIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	return nil, nil
}
func (noopIndex) DeleteByDocID(ctx context.Context, docID string) error { return nil }

type indexOp struct {
	kind    string
	docID   string
	docType string
}

type recordingIndex struct {
	ops []indexOp
}

func (r *recordingIndex) InitCollection() error { return nil }
func (r *recordingIndex) UpsertChunk(ctx context.Context, docID, docType, text string, embedding []float32, meta map[string]interface{}) error {
	r.ops = append(r.ops, indexOp{kind: "upsert", docID: docID, docType: docType})
	return nil
}
func (r *recordingIndex) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	return nil, nil
}
func (r *recordingIndex) DeleteByDocID(ctx context.Context, docID string) error {
	r.ops = append(r.ops, indexOp{kind: "delete", docID: docID})
	return nil
}

type cannedExtractor struct {
	texts map[string]string
}

func (c *cannedExtractor) Extract(filePath string, kind models.MediaKind) string {
	return c.texts[filePath]
}

func newScreeningFixture(t *testing.T) (*models.Screening, *memScreeningRepo, *memDocRepo, *cannedExtractor) {
	t.Helper()

	jdID := uuid.New()
	resumeID := uuid.New()

	screening := &models.Screening{
		ID:               uuid.New(),
		JobTitle:         "Backend Engineer",
		JDDocumentID:     jdID,
		ResumeDocumentID: resumeID,
		Status:           models.StatusQueued,
	}

	docRepo := &memDocRepo{docs: map[uuid.UUID]*models.Document{
		jdID:     {ID: jdID, FilePath: "/jd.txt", MediaKind: models.MediaKindText},
		resumeID: {ID: resumeID, FilePath: "/resume.txt", MediaKind: models.MediaKindText},
	}}

	extractor := &cannedExtractor{texts: map[string]string{
		"/jd.txt":     "We need a Go engineer with 5 years of experience.",
		"/resume.txt": "Go engineer, 6 years, built payment systems.",
	}}

	return screening, &memScreeningRepo{screening: screening}, docRepo, extractor
}

func TestScreenCandidate_HappyPath(t *testing.T) {
	screening, repo, docRepo, extractor := newScreeningFixture(t)

	gemini := &stubGemini{
		response: `{"fit_score": 88, "summary": "- excellent overlap", "action": "Interview", "email": "Hi!"}`,
	}

	screener := NewScreenerService(repo, docRepo, gemini, noopIndex{}, extractor)
	require.NoError(t, screener.ScreenCandidate(context.Background(), screening.ID))

	// Both document texts end up in the one-shot prompt
	assert.Contains(t, gemini.prompt, "5 years of experience")
	assert.Contains(t, gemini.prompt, "payment systems")

	require.NotNil(t, repo.report)
	require.NotNil(t, repo.report.FitScore)
	assert.Equal(t, 88, *repo.report.FitScore)
	assert.Equal(t, "Interview", repo.report.Action)
	assert.Equal(t, []models.ScreeningStatus{models.StatusProcessing}, repo.statuses)
	assert.Empty(t, repo.errorMsg)
}

func TestScreenCandidate_ModelFailureIsFatal(t *testing.T) {
	screening, repo, docRepo, extractor := newScreeningFixture(t)

	gemini := &stubGemini{err: &InvocationError{Err: errors.New("connection refused")}}

	screener := NewScreenerService(repo, docRepo, gemini, noopIndex{}, extractor)
	err := screener.ScreenCandidate(context.Background(), screening.ID)

	require.Error(t, err)
	var invErr *InvocationError
	assert.True(t, errors.As(err, &invErr))
	assert.Contains(t, repo.errorMsg, "connection refused")
	assert.Nil(t, repo.report)
}

func TestScreenCandidate_MalformedOutputStillCompletes(t *testing.T) {
	screening, repo, docRepo, extractor := newScreeningFixture(t)

	gemini := &stubGemini{response: "I cannot produce JSON today, sorry."}

	screener := NewScreenerService(repo, docRepo, gemini, noopIndex{}, extractor)
	require.NoError(t, screener.ScreenCandidate(context.Background(), screening.ID))

	require.NotNil(t, repo.report)
	assert.Nil(t, repo.report.FitScore)
	assert.Equal(t, models.NotProvided, repo.report.Summary)
	assert.True(t, repo.report.Degraded())
	assert.Empty(t, repo.errorMsg)
}

func TestScreenCandidate_ReindexReplacesPriorChunks(t *testing.T) {
	screening, repo, docRepo, extractor := newScreeningFixture(t)

	index := &recordingIndex{}
	gemini := &stubGemini{
		response:  `{"fit_score": 70, "summary": "- fine", "action": "Hold", "email": ""}`,
		embedding: []float32{0.1, 0.2},
	}

	screener := NewScreenerService(repo, docRepo, gemini, index, extractor)
	require.NoError(t, screener.ScreenCandidate(context.Background(), screening.ID))
	require.NoError(t, screener.ScreenCandidate(context.Background(), screening.ID))

	docID := screening.ID.String()
	deletes := 0
	for i, op := range index.ops {
		assert.Equal(t, docID, op.docID)
		if op.kind == "delete" {
			deletes++
			// Stale chunks are cleared before any upsert of the same run
			if i+1 < len(index.ops) {
				assert.Equal(t, "upsert", index.ops[i+1].kind)
			}
		} else {
			assert.Equal(t, DocTypeCandidate, op.docType)
		}
	}
	assert.Equal(t, 2, deletes, "each run clears the screening's chunks before re-indexing")
}

func TestScreenCandidate_EmptyExtractionDoesNotAbort(t *testing.T) {
	screening, repo, docRepo, _ := newScreeningFixture(t)

	// Both documents yield no text; the pipeline still runs to completion
	extractor := &cannedExtractor{texts: map[string]string{}}
	gemini := &stubGemini{
		response: `{"fit_score": 0, "summary": "- no data", "action": "Hold", "email": ""}`,
	}

	screener := NewScreenerService(repo, docRepo, gemini, noopIndex{}, extractor)
	require.NoError(t, screener.ScreenCandidate(context.Background(), screening.ID))

	require.NotNil(t, repo.report)
	require.NotNil(t, repo.report.FitScore)
	assert.Equal(t, 0, *repo.report.FitScore)
}
