package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Role         string `json:"role"`
	MediaKind    string `json:"media_kind"`
}

type ScreenRequest struct {
	JobTitle         string `json:"job_title"`
	JDDocumentID     string `json:"jd_document_id"`
	ResumeDocumentID string `json:"resume_document_id"`
}

type ScreenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Report       *ReportData     `json:"report,omitempty"`
	Sections     []ReportSection `json:"sections,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

type ReportData struct {
	FitScore   *int   `json:"fit_score,omitempty"`
	Summary    string `json:"summary"`
	Action     string `json:"action"`
	EmailDraft string `json:"email_draft"`
	Degraded   bool   `json:"degraded"`
}

type EmailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}

type EmailResponse struct {
	Delivered bool   `json:"delivered"`
	Status    string `json:"status"`
}
