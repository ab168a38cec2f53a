package models

// NotProvided marks a labeled section the model never produced. Callers can
// compare report fields against it to detect a degraded parse.
const NotProvided = "Not provided."

// ScreeningReport is the canonical structured record recovered from raw model
// output. FitScore is nil when no integer score could be recovered; the string
// fields are never nil, only empty or sentinel-valued.
type ScreeningReport struct {
	FitScore   *int   `json:"fit_score,omitempty"`
	Summary    string `json:"summary"`
	Action     string `json:"action"`
	EmailDraft string `json:"email_draft"`
}

// Degraded reports whether any field fell back to a default or sentinel value
// during parsing. A degraded report is still a usable report.
func (r ScreeningReport) Degraded() bool {
	if r.FitScore == nil {
		return true
	}
	for _, v := range []string{r.Summary, r.Action, r.EmailDraft} {
		if v == NotProvided {
			return true
		}
	}
	return false
}

// ReportSection is one named block handed to the presentation boundary.
type ReportSection struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
