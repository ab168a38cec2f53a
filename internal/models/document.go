package models

import (
	"time"

	"github.com/google/uuid"
)

// MediaKind is the declared media kind of an uploaded document.
type MediaKind string

const (
	MediaKindPDF  MediaKind = "pdf"
	MediaKindText MediaKind = "text"
)

// Document roles within one screening.
const (
	RoleJobDescription = "jd"
	RoleResume         = "resume"
)

type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	Role             string    `gorm:"type:text" json:"role"`
	MediaKind        MediaKind `gorm:"type:text" json:"media_kind"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *Document) TableName() string {
	return "documents"
}
