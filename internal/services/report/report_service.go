package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cyberreport/backend/internal/database"
	"github.com/cyberreport/backend/internal/models"
	"github.com/cyberreport/backend/internal/routing"
	"github.com/cyberreport/backend/internal/utils"
	"gorm.io/gorm"
)

// Sentinel errors for lookups that found nothing to act on.
var (
	// ErrDraftNotFound covers both an unknown reference and a reference
	// whose report was already submitted: neither is resumable as a draft.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrReportNotFound means no report matches the given identifier.
	ErrReportNotFound = errors.New("report not found")
)

// maxReferenceAttempts bounds the retry loop when a freshly generated
// reference code collides with a stored one.
const maxReferenceAttempts = 5

// Service owns the report draft/submission lifecycle and destination
// exports. Every operation is a single transaction against the store.
type Service struct {
	db *gorm.DB
}

// NewService creates a new report service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SaveDraft stores the current form state as a draft. When existingRef
// matches a stored report the row's five section payloads are overwritten
// (last write wins) and its status forced back to draft; otherwise a new
// draft row is inserted under a fresh reference code. Returns the reference
// code the draft is resumable under.
func (s *Service) SaveDraft(payload routing.Payload, existingRef string) (string, error) {
	if ref := normalizeReference(existingRef); ref != "" {
		var row database.Report
		err := s.db.Where("reference = ?", ref).First(&row).Error
		if err == nil {
			updates := sectionColumns(payload)
			updates["status"] = database.StatusDraft
			if err := s.db.Model(&row).Updates(updates).Error; err != nil {
				return "", fmt.Errorf("error updating draft: %w", err)
			}
			return ref, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("error finding draft: %w", err)
		}
	}

	// Collisions are vanishingly rare but the unique index still catches
	// them, so retry with a new code rather than surfacing the violation.
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		code, err := utils.NewReferenceCode()
		if err != nil {
			return "", err
		}
		row := database.Report{
			Reference:    &code,
			Status:       database.StatusDraft,
			Reporter:     models.JSON(payload.Reporter),
			Organisation: models.JSON(payload.Organisation),
			Purpose:      models.JSON(payload.Purpose),
			Incident:     models.JSON(payload.Incident),
			Ransomware:   models.JSON(payload.Ransomware),
		}
		err = s.db.Create(&row).Error
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("error creating draft: %w", err)
		}
	}
	return "", errors.New("could not allocate a unique reference code")
}

// LoadDraft returns the stored form state for a draft reference. The lookup
// is case-insensitive and restricted to drafts: an unknown code and a code
// belonging to an already submitted report both return ErrDraftNotFound.
func (s *Service) LoadDraft(reference string) (*routing.Payload, error) {
	ref := normalizeReference(reference)
	var row database.Report
	err := s.db.Where("reference = ? AND status = ?", ref, database.StatusDraft).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("error loading draft: %w", err)
	}
	payload := payloadFromRow(&row)
	return &payload, nil
}

// SubmitFromReference promotes the draft with the given reference to a
// submitted report and returns its permanent id. Submitting an already
// submitted reference is a no-op that returns the same id.
func (s *Service) SubmitFromReference(reference string) (int64, error) {
	ref := normalizeReference(reference)
	var row database.Report
	err := s.db.Where("reference = ?", ref).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrReportNotFound
		}
		return 0, fmt.Errorf("error finding report: %w", err)
	}
	if row.Status != database.StatusSubmitted {
		if err := s.db.Model(&row).Update("status", database.StatusSubmitted).Error; err != nil {
			return 0, fmt.Errorf("error submitting report: %w", err)
		}
	}
	return row.ID, nil
}

// SaveReport stores a validated report directly as submitted, together with
// its attachments, in one transaction. Returns the permanent id.
func (s *Service) SaveReport(report *models.Report, attachments []database.Attachment) (int64, error) {
	state := report.FormState()
	row := database.Report{
		Status:       database.StatusSubmitted,
		Reporter:     models.JSON(state.Reporter),
		Organisation: models.JSON(state.Organisation),
		Purpose:      models.JSON(state.Purpose),
		Incident:     models.JSON(state.Incident),
		Ransomware:   models.JSON(state.Ransomware),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("error creating report: %w", err)
		}
		for i := range attachments {
			attachments[i].ID = 0
			attachments[i].ReportID = row.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return fmt.Errorf("error storing attachment %q: %w", attachments[i].Filename, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return row.ID, nil
}

// GetDestinationJSON loads a submitted report by permanent id, reshapes it
// for the destination and returns the document as indented JSON text.
func (s *Service) GetDestinationJSON(id int64, dest string) (string, error) {
	var row database.Report
	err := s.db.First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReportNotFound
		}
		return "", fmt.Errorf("error loading report: %w", err)
	}

	doc := routing.ShapeForDestination(dest, payloadFromRow(&row))
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error serializing destination document: %w", err)
	}
	return string(data), nil
}

// PurgeAll unconditionally deletes every report and attachment. Attachments
// are removed first so the purge works even where the engine has foreign key
// cascades disabled. Development use only.
func (s *Service) PurgeAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM attachments").Error; err != nil {
			return fmt.Errorf("error purging attachments: %w", err)
		}
		if err := tx.Exec("DELETE FROM reports").Error; err != nil {
			return fmt.Errorf("error purging reports: %w", err)
		}
		return nil
	})
}

// normalizeReference uppercases and trims a reference code; codes are stored
// uppercase, which makes lookups case-insensitive.
func normalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

func sectionColumns(payload routing.Payload) map[string]interface{} {
	return map[string]interface{}{
		"reporter":     models.JSON(payload.Reporter),
		"organisation": models.JSON(payload.Organisation),
		"purpose":      models.JSON(payload.Purpose),
		"incident":     models.JSON(payload.Incident),
		"ransomware":   models.JSON(payload.Ransomware),
	}
}

func payloadFromRow(row *database.Report) routing.Payload {
	return routing.Payload{
		Reporter:     row.Reporter,
		Organisation: row.Organisation,
		Purpose:      row.Purpose,
		Incident:     row.Incident,
		Ransomware:   row.Ransomware,
	}
}
