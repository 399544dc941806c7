// Package export flattens stored reports into the tabular summaries the
// dashboard shows and downloads as CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// narrativeLimit caps the narrative excerpt in a summary row.
const narrativeLimit = 80

// unreadableNote annotates a row whose stored JSON could not be decoded.
// The row is kept rather than dropped so the dashboard still shows it.
const unreadableNote = "[unreadable stored payload]"

// Summary is one dashboard row: the report's bookkeeping fields plus a few
// display values lifted out of the JSON sections.
type Summary struct {
	ID           int64     `json:"id"`
	Created      time.Time `json:"created_at"`
	Reference    string    `json:"reference"`
	Status       string    `json:"status"`
	Reporter     string    `json:"reporter"`
	Email        string    `json:"email"`
	Organisation string    `json:"organisation"`
	Jurisdiction string    `json:"jurisdiction"`
	IncidentType string    `json:"incident_type"`
	Summary      string    `json:"summary"`
}

// csvHeader is the column order for both search and CSV output.
var csvHeader = []string{
	"ID", "Created", "Reference", "Status", "Reporter", "Email",
	"Organisation", "Jurisdiction", "Incident Type", "Summary",
}

// Service reads stored reports for the dashboard.
type Service struct {
	db *gorm.DB
}

// NewService creates a new export service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// storedRow scans the raw report columns; JSON sections stay as bytes so a
// malformed section can be isolated to its row instead of failing the fetch.
type storedRow struct {
	ID           int64
	CreatedAt    time.Time
	Reference    *string
	Status       string
	Reporter     []byte
	Organisation []byte
	Incident     []byte
}

// FetchReports returns summaries for all stored reports, newest first. When
// search is non-empty only rows where the lower-cased text appears in any
// column are kept.
func (s *Service) FetchReports(search string) ([]Summary, error) {
	var rows []storedRow
	err := s.db.Table("reports").
		Select("id, created_at, reference, status, reporter, organisation, incident").
		Order("id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching reports: %w", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, flatten(&rows[i]))
	}

	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		filtered := summaries[:0]
		for _, row := range summaries {
			if rowMatches(row, q) {
				filtered = append(filtered, row)
			}
		}
		summaries = filtered
	}
	return summaries, nil
}

// WriteCSV writes the summaries as CSV with a header row.
func (s *Service) WriteCSV(w io.Writer, rows []Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.columns()); err != nil {
			return fmt.Errorf("error writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func flatten(row *storedRow) Summary {
	out := Summary{
		ID:      row.ID,
		Created: row.CreatedAt,
		Status:  row.Status,
	}
	if row.Reference != nil {
		out.Reference = *row.Reference
	}

	reporter, okReporter := decodeSection(row.Reporter)
	organisation, okOrganisation := decodeSection(row.Organisation)
	incident, okIncident := decodeSection(row.Incident)

	out.Reporter = strings.TrimSpace(stringField(reporter, "first_name") + " " + stringField(reporter, "surname"))
	out.Email = stringField(reporter, "email")
	out.Organisation = stringField(organisation, "name")
	out.Jurisdiction = stringField(organisation, "jurisdiction")
	out.IncidentType = stringField(incident, "type")
	out.Summary = fmt.Sprintf("%s — %s", out.IncidentType, truncate(stringField(incident, "narrative"), narrativeLimit))

	if !okReporter || !okOrganisation || !okIncident {
		out.Summary = unreadableNote
	}
	return out
}

// decodeSection decodes a stored JSON section. An empty or NULL column is an
// empty section, not an error.
func decodeSection(data []byte) (map[string]interface{}, bool) {
	if len(data) == 0 {
		return map[string]interface{}{}, true
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]interface{}{}, false
	}
	return m, true
}

func stringField(section map[string]interface{}, field string) string {
	v, _ := section[field].(string)
	return v
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func rowMatches(row Summary, q string) bool {
	for _, col := range row.columns() {
		if strings.Contains(strings.ToLower(col), q) {
			return true
		}
	}
	return false
}

func (row Summary) columns() []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.Created.Format("2006-01-02 15:04:05"),
		row.Reference,
		row.Status,
		row.Reporter,
		row.Email,
		row.Organisation,
		row.Jurisdiction,
		row.IncidentType,
		row.Summary,
	}
}
