package services

import (
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

// TextExtractor converts an uploaded document into plain text. Extraction is
// total: whatever goes wrong, the caller gets a string back, possibly empty.
type TextExtractor interface {
	Extract(filePath string, kind models.MediaKind) string
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract implements TextExtractor.
func (t *textExtractor) Extract(filePath string, kind models.MediaKind) string {
	switch kind {
	case models.MediaKindPDF:
		return t.extractPDF(filePath)
	default:
		return t.extractPlainText(filePath)
	}
}

func (t *textExtractor) extractPDF(filePath string) (text string) {
	// The pdf library panics on some malformed documents instead of
	// returning an error. Extraction must stay total either way.
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("⚠️  PDF extraction panicked on %s: %v", filePath, rec)
			text = ""
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		log.Printf("⚠️  Failed to open PDF %s: %v", filePath, err)
		return ""
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page contributes nothing
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return strings.TrimSpace(textBuilder.String())
}

func (t *textExtractor) extractPlainText(filePath string) string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("⚠️  Failed to read text file %s: %v", filePath, err)
		return ""
	}

	// Tolerate broken encodings rather than failing the pipeline
	return strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
}

// CleanText normalizes extracted text before it is embedded into a prompt.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
