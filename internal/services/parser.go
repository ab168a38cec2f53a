package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/gvarshith95/Capstone-Project/internal/models"
)

var (
	controlCharPattern   = regexp.MustCompile(`[\x00-\x1f]`)
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	digitRunPattern      = regexp.MustCompile(`\d+`)

	// Bolded section markers of the legacy labeled contract, e.g.
	// "**Fit Score (0-100):**". Anything between the label name and the
	// closing marker is noise.
	labelPattern = regexp.MustCompile(`(?i)\*\*\s*(fit score|candidate summary|recommended action|draft outreach email)[^*]*\*\*`)
)

// ReportParser recovers a ScreeningReport from raw model output. Models do
// not reliably honor structured-output instructions, so parsing is two-tier:
// strict JSON first, labeled-section extraction as the fallback. Parse never
// fails; unrecoverable fields degrade to defaults instead.
type ReportParser struct{}

func NewReportParser() *ReportParser {
	return &ReportParser{}
}

func (p *ReportParser) Parse(raw string) models.ScreeningReport {
	if report, ok := p.tryParseStructured(raw); ok {
		return report
	}
	return p.tryParseLabeled(raw)
}

// structuredPayload mirrors the JSON contract requested by the prompt.
// FitScore stays a raw token so its JSON type can be checked: the contract
// demands an integer, and a quoted or fractional score is treated as absent
// rather than coerced. The text fields are pointers so key presence is
// distinguishable from an empty value.
type structuredPayload struct {
	FitScore json.RawMessage `json:"fit_score"`
	Summary  *string         `json:"summary"`
	Action   *string         `json:"action"`
	Email    *string         `json:"email"`
}

func (sp structuredPayload) hasContractKey() bool {
	return sp.FitScore != nil || sp.Summary != nil || sp.Action != nil || sp.Email != nil
}

// tryParseStructured attempts a strict JSON decode after stripping the
// wrapping artifacts models commonly add: markdown fences, a leading "json"
// language tag, trailing commas, and raw control characters. A decode that
// carries none of the contract keys is rejected, so a stray brace-delimited
// object inside otherwise-labeled prose cannot suppress the fallback.
func (p *ReportParser) tryParseStructured(raw string) (models.ScreeningReport, bool) {
	cleaned := cleanStructuredPayload(raw)

	var payload structuredPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.ScreeningReport{}, false
	}
	if !payload.hasContractKey() {
		return models.ScreeningReport{}, false
	}

	report := models.ScreeningReport{
		Summary:    stringOrEmpty(payload.Summary),
		Action:     stringOrEmpty(payload.Action),
		EmailDraft: stringOrEmpty(payload.Email),
	}

	if score, ok := parseIntegerToken(payload.FitScore); ok {
		report.FitScore = &score
	}

	return report, true
}

func cleanStructuredPayload(text string) string {
	// Remove markdown code blocks and a leading language tag
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "json")

	// Slice to the outermost object so conversational preambles don't break
	// the decode
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start != -1 && end > start {
		text = text[start : end+1]
	}

	// Raw control characters are illegal inside JSON strings and break the
	// strict decoder
	text = controlCharPattern.ReplaceAllString(text, "")
	text = trailingCommaPattern.ReplaceAllString(text, "$1")

	return text
}

// parseIntegerToken accepts only a bare JSON integer. "82" (quoted) and 82.5
// both fail, leaving the score absent.
func parseIntegerToken(raw json.RawMessage) (int, bool) {
	token := strings.TrimSpace(string(raw))
	if token == "" || token == "null" {
		return 0, false
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}

	return value, true
}

// tryParseLabeled extracts the four canonical sections of the legacy
// human-readable contract. A missing label yields the NotProvided sentinel;
// the score is the first run of digits in its section, if any.
func (p *ReportParser) tryParseLabeled(raw string) models.ScreeningReport {
	sections := splitLabeledSections(raw)

	report := models.ScreeningReport{
		Summary:    sectionOrSentinel(sections, "candidate summary"),
		Action:     sectionOrSentinel(sections, "recommended action"),
		EmailDraft: sectionOrSentinel(sections, "draft outreach email"),
	}

	if scoreSection, ok := sections["fit score"]; ok {
		if digits := digitRunPattern.FindString(scoreSection); digits != "" {
			if value, err := strconv.Atoi(digits); err == nil {
				report.FitScore = &value
			}
		}
	}

	return report
}

// splitLabeledSections maps each canonical label (lowercased) to the text
// between the end of its marker and the start of the next one.
func splitLabeledSections(raw string) map[string]string {
	matches := labelPattern.FindAllStringSubmatchIndex(raw, -1)
	sections := make(map[string]string, len(matches))

	for i, match := range matches {
		label := strings.ToLower(raw[match[2]:match[3]])

		sectionEnd := len(raw)
		if i+1 < len(matches) {
			sectionEnd = matches[i+1][0]
		}

		sections[label] = strings.TrimSpace(raw[match[1]:sectionEnd])
	}

	return sections
}

func stringOrEmpty(value *string) string {
	if value != nil {
		return *value
	}
	return ""
}

func sectionOrSentinel(sections map[string]string, label string) string {
	if value, ok := sections[label]; ok {
		return value
	}
	return models.NotProvided
}
