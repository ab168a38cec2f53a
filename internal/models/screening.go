package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

type Screening struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle         string          `gorm:"type:text" json:"job_title"`
	JDDocumentID     uuid.UUID       `gorm:"type:uuid;not null" json:"jd_document_id"`
	ResumeDocumentID uuid.UUID       `gorm:"type:uuid;not null" json:"resume_document_id"`
	Status           ScreeningStatus `gorm:"not null;default:'queued'" json:"status"`
	FitScore         *int            `gorm:"type:integer" json:"fit_score,omitempty"`
	Summary          *string         `gorm:"type:text" json:"summary,omitempty"`
	Action           *string         `gorm:"type:text" json:"action,omitempty"`
	EmailDraft       *string         `gorm:"type:text" json:"email_draft,omitempty"`
	ErrorMessage     *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	JDDocument     Document `gorm:"foreignKey:JDDocumentID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Screening) TableName() string {
	return "screenings"
}
