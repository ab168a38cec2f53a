package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gvarshith95/Capstone-Project/internal/config"
	"github.com/gvarshith95/Capstone-Project/internal/models"
	"github.com/gvarshith95/Capstone-Project/internal/services"
)

// Ingests screening-guidance documents (rubrics, role guidelines) into the
// vector index so the screener can retrieve them as prompt context.
//
// Usage: go run scripts/ingest_guidance.go <file.pdf|file.txt> [...]
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <guidance file> [...]", os.Args[0])
	}

	log.Println("🚀 Starting guidance ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	indexService, err := services.NewIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewTextExtractor()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for _, path := range os.Args[1:] {
		log.Printf("\n📄 Processing: %s", path)

		kind := models.MediaKindText
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			kind = models.MediaKindPDF
		}

		text := services.CleanText(extractor.Extract(path, kind))
		if text == "" {
			log.Printf("   ⚠️  No text extracted, skipping...")
			failCount++
			continue
		}

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		docID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		stored := 0

		// Re-ingesting a file replaces its chunks instead of stacking them
		if err := indexService.DeleteByDocID(ctx, docID); err != nil {
			log.Printf("   ⚠️  Failed to clear prior chunks for %s: %v", docID, err)
		}

		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			meta := map[string]interface{}{"source": filepath.Base(path)}

			if err := indexService.UpsertChunk(ctx, docID, services.DocTypeGuidance, chunk, embedding, meta); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++
		}

		log.Printf("   ✅ Stored %d/%d chunks for %s", stored, len(chunks), docID)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary: ✅ %d succeeded, ❌ %d failed", successCount, failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
