package migrations

import (
	"time"

	"github.com/cyberreport/backend/internal/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Snapshots of the entity shapes at the time of this migration. AutoMigrate
// keeps the DDL portable across the SQLite and PostgreSQL backends.
type report struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	Reference *string `gorm:"size:8;uniqueIndex"`
	Status    string  `gorm:"size:16;not null;default:submitted"`

	Reporter     models.JSON `gorm:"type:text"`
	Organisation models.JSON `gorm:"type:text"`
	Purpose      models.JSON `gorm:"type:text"`
	Incident     models.JSON `gorm:"type:text"`
	Ransomware   models.JSON `gorm:"type:text"`

	Attachments []attachment `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

func (report) TableName() string { return "reports" }

type attachment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	ReportID int64  `gorm:"not null;index"`
	Filename string `gorm:"size:255;not null"`
	Content  []byte
}

func (attachment) TableName() string { return "attachments" }

// CreateReportTables creates the reports and attachments tables
func CreateReportTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_report_tables",
		Migrate: func(tx *gorm.DB) error {
			return tx.AutoMigrate(&report{}, &attachment{})
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&attachment{}); err != nil {
				return err
			}
			return tx.Migrator().DropTable(&report{})
		},
	}
}
