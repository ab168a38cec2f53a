package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/repositories"
)

// ScreenerService runs the full screening pipeline for one queued analysis:
// text extraction, prompt construction, model invocation, and structured
// report recovery. Only a failed model call fails the run; extraction and
// parse issues degrade into defaults.
type ScreenerService interface {
	ScreenCandidate(ctx context.Context, screeningID uuid.UUID) error
}

type screenerService struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	gemini        GeminiService
	index         IndexService
	extractor     TextExtractor
	chunker       TextChunker
	promptBuilder *PromptBuilder
	parser        *ReportParser
}

func NewScreenerService(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	gemini GeminiService,
	index IndexService,
	extractor TextExtractor,
) ScreenerService {
	return &screenerService{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		gemini:        gemini,
		index:         index,
		extractor:     extractor,
		chunker:       NewTextChunker(),
		promptBuilder: NewPromptBuilder(),
		parser:        NewReportParser(),
	}
}

func (s *screenerService) ScreenCandidate(ctx context.Context, screeningID uuid.UUID) error {
	if err := s.screeningRepo.UpdateStatus(screeningID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting screening for job ID: %s\n", screeningID)

	screening, err := s.screeningRepo.FindByID(screeningID)
	if err != nil {
		s.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to get screening: %w", err)
	}

	jdDoc, err := s.docRepo.FindByID(screening.JDDocumentID)
	if err != nil {
		s.screeningRepo.UpdateError(screeningID, fmt.Sprintf("JD document not found: %v", err))
		return fmt.Errorf("failed to get JD document: %w", err)
	}

	resumeDoc, err := s.docRepo.FindByID(screening.ResumeDocumentID)
	if err != nil {
		s.screeningRepo.UpdateError(screeningID, fmt.Sprintf("Resume document not found: %v", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	// Step 1: Extract text. Extraction is total; an empty result is a
	// degradation, not a failure.
	log.Println("📄 Extracting JD and resume text...")
	jdText := CleanText(s.extractor.Extract(jdDoc.FilePath, jdDoc.MediaKind))
	resumeText := CleanText(s.extractor.Extract(resumeDoc.FilePath, resumeDoc.MediaKind))

	if jdText == "" {
		log.Printf("⚠️  JD document %s yielded no text\n", jdDoc.ID)
	}
	if resumeText == "" {
		log.Printf("⚠️  Resume document %s yielded no text\n", resumeDoc.ID)
	}

	// Step 2: Retrieve guidance context (best-effort)
	guidance := s.retrieveGuidance(ctx, screening.JobTitle, resumeText)

	// Step 3: Build the one-shot prompt
	prompt := s.promptBuilder.BuildScreeningPrompt(jdText, resumeText, guidance)
	log.Printf("📝 Screening prompt length: %d characters", len(prompt))

	// Step 4: Invoke the model. This is the only fatal step.
	raw, err := s.gemini.Complete(ctx, prompt)
	if err != nil {
		s.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to screen candidate: %w", err)
	}

	log.Printf("✅ Model response received: %d characters", len(raw))

	// Step 5: Recover the structured report. Parse never fails.
	report := s.parser.Parse(raw)
	if report.Degraded() {
		log.Printf("⚠️  Report for %s is degraded (missing or defaulted fields)\n", screeningID)
	}

	// Step 6: Save the report
	if err := s.screeningRepo.UpdateReport(screeningID, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	// Step 7: Index the candidate for future similarity lookups (best-effort)
	s.indexCandidate(ctx, screening, resumeText, report)

	log.Printf("✅ Screening completed successfully for job ID: %s\n", screeningID)
	return nil
}

// retrieveGuidance pulls rubric snippets and summaries of similar previously
// screened candidates. Any failure here just means the prompt carries no
// extra context.
func (s *screenerService) retrieveGuidance(ctx context.Context, jobTitle, resumeText string) string {
	if resumeText == "" {
		return ""
	}

	query := s.promptBuilder.BuildRetrievalQuery(jobTitle, resumeText)
	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to generate retrieval embedding: %v\n", err)
		return ""
	}

	var results []SearchResult
	for _, docType := range []string{DocTypeGuidance, DocTypeCandidate} {
		found, err := s.index.SearchSimilar(ctx, embedding, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search %s context: %v\n", docType, err)
			continue
		}
		results = append(results, found...)
	}

	return FormatGuidanceContext(results)
}

// indexCandidate stores the screened resume in the vector index so later
// screenings can retrieve it as a comparable. All chunks share the screening
// ID as their document ID; clearing that ID first keeps a re-run from
// accumulating stale chunks.
func (s *screenerService) indexCandidate(ctx context.Context, screening *models.Screening, resumeText string, report models.ScreeningReport) {
	if resumeText == "" {
		return
	}

	docID := screening.ID.String()
	if err := s.index.DeleteByDocID(ctx, docID); err != nil {
		log.Printf("⚠️  Failed to clear prior chunks for screening %s: %v\n", docID, err)
	}

	meta := map[string]interface{}{
		"screening_id": docID,
		"job_title":    screening.JobTitle,
		"action":       report.Action,
	}
	if report.FitScore != nil {
		meta["fit_score"] = *report.FitScore
	}

	chunks := s.chunker.ChunkText(resumeText, 1000, 200)
	for i, chunk := range chunks {
		embedding, err := s.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("⚠️  Failed to embed candidate chunk %d: %v\n", i+1, err)
			continue
		}

		if err := s.index.UpsertChunk(ctx, docID, DocTypeCandidate, chunk, embedding, meta); err != nil {
			log.Printf("⚠️  Failed to index candidate chunk %d: %v\n", i+1, err)
		}
	}
}
