package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt combines the job description and resume into a single
// one-shot instruction. The output contract enumerates every required field so
// the parser's JSON strategy triggers instead of the labeled-text fallback.
func (pb *PromptBuilder) BuildScreeningPrompt(jdText, resumeText, guidance string) string {
	guidanceSection := ""
	if strings.TrimSpace(guidance) != "" {
		guidanceSection = fmt.Sprintf("\nSCREENING GUIDANCE (context from previous screenings and rubrics):\n%s\n", guidance)
	}

	return fmt.Sprintf(`You are an expert technical recruiter screening a candidate's resume against a job description.

JOB DESCRIPTION:
%s

RESUME:
%s
%s
Compare the resume to the job description and produce your assessment.

Return your response as a single JSON object with exactly these fields:
{
  "fit_score": <integer 0-100, how well the resume matches the job description>,
  "summary": "<candidate summary as 3-5 bullet points>",
  "action": "<one of: Interview, Hold, Reject>",
  "email": "<draft outreach email to the candidate, empty string if action is Reject>"
}

fit_score must be a JSON integer, not a string and not a decimal.
Return ONLY the JSON object. Do not add any prose, explanation, or markdown outside it.`,
		jdText, resumeText, guidanceSection)
}

// BuildRetrievalQuery shapes the text used to retrieve guidance context.
func (pb *PromptBuilder) BuildRetrievalQuery(jobTitle, resumeText string) string {
	if jobTitle == "" {
		return resumeText
	}
	return fmt.Sprintf("Screening guidance and comparable candidates for %s:\n%s", jobTitle, resumeText)
}

// FormatGuidanceContext renders retrieved snippets for prompt inclusion.
func FormatGuidanceContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
