package database

import (
	"time"

	"github.com/cyberreport/backend/internal/models"
)

// Report statuses. A draft is mutable and addressed by its reference code;
// a submitted report is immutable and addressed by its permanent id.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Report is a stored report row: five JSON section columns plus lifecycle
// bookkeeping. Reference is nil for reports created directly as submitted.
type Report struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Reference *string   `gorm:"size:8;uniqueIndex" json:"reference,omitempty"`
	Status    string    `gorm:"size:16;not null;default:submitted" json:"status"`

	Reporter     models.JSON `gorm:"type:text" json:"reporter"`
	Organisation models.JSON `gorm:"type:text" json:"organisation"`
	Purpose      models.JSON `gorm:"type:text" json:"purpose"`
	Incident     models.JSON `gorm:"type:text" json:"incident"`
	Ransomware   models.JSON `gorm:"type:text" json:"ransomware,omitempty"`

	Attachments []Attachment `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

// Attachment is a file stored with a submitted report. Attachments are
// written once, at submission; drafts never carry them.
type Attachment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID int64  `gorm:"not null;index" json:"report_id"`
	Filename string `gorm:"size:255;not null" json:"filename"`
	Content  []byte `json:"-"`
}
