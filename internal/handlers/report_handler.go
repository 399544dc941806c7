package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/cyberreport/backend/internal/database"
	"github.com/cyberreport/backend/internal/models"
	"github.com/cyberreport/backend/internal/routing"
	"github.com/cyberreport/backend/internal/services/report"
	"github.com/cyberreport/backend/internal/validators"
)

// businessNumberWarning is the soft warning shown when the ABN format check
// fails. It never blocks a save or submission.
const businessNumberWarning = "Business number format looks unusual. Continue if correct."

// ReportHandler handles the draft/submission lifecycle and destination exports
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// formStateRequest is the loose five-section form state the UI layer sends
// on every draft save and completion check.
type formStateRequest struct {
	Reference    string                 `json:"reference"`
	Reporter     map[string]interface{} `json:"reporter"`
	Organisation map[string]interface{} `json:"organisation"`
	Purpose      map[string]interface{} `json:"purpose"`
	Incident     map[string]interface{} `json:"incident"`
	Ransomware   map[string]interface{} `json:"ransomware"`
}

func (r *formStateRequest) payload() routing.Payload {
	return routing.Payload{
		Reporter:     r.Reporter,
		Organisation: r.Organisation,
		Purpose:      r.Purpose,
		Incident:     r.Incident,
		Ransomware:   r.Ransomware,
	}
}

func (r *formStateRequest) completion() int {
	return models.CompletionPercent(r.Reporter, r.Organisation, r.Purpose, r.Incident, r.Ransomware)
}

// submitReportRequest is a full report submission, validated before storage.
type submitReportRequest struct {
	Reporter     models.Reporter     `json:"reporter"`
	Organisation models.Organisation `json:"organisation"`
	Purpose      models.Purpose      `json:"purpose"`
	Incident     models.Incident     `json:"incident"`
	Ransomware   *models.Ransomware  `json:"ransomware"`
}

// SaveDraft stores the posted form state as a draft and returns the
// reference code to resume it under, plus the recomputed completion percent.
func (h *ReportHandler) SaveDraft(c *gin.Context) {
	var req formStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft payload"})
		return
	}

	reference, err := h.reportService.SaveDraft(req.payload(), req.Reference)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference":          reference,
		"completion_percent": req.completion(),
	})
}

// LoadDraft returns the stored form state for a draft reference code.
func (h *ReportHandler) LoadDraft(c *gin.Context) {
	payload, err := h.reportService.LoadDraft(c.Param("reference"))
	if err != nil {
		if errors.Is(err, report.ErrDraftNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No draft found for that reference"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reporter":     payload.Reporter,
		"organisation": payload.Organisation,
		"purpose":      payload.Purpose,
		"incident":     payload.Incident,
		"ransomware":   payload.Ransomware,
		"completion_percent": models.CompletionPercent(
			payload.Reporter, payload.Organisation, payload.Purpose, payload.Incident, payload.Ransomware),
	})
}

// SubmitDraft promotes a draft to a submitted report and returns its
// permanent id.
func (h *ReportHandler) SubmitDraft(c *gin.Context) {
	id, err := h.reportService.SubmitFromReference(c.Param("reference"))
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No report found for that reference"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// SubmitReport validates and stores a complete report directly as submitted.
// Accepts either a JSON body or a multipart form with a "report" JSON field
// plus "attachments" file parts. Conditional-requiredness violations come
// back as 422 with the offending section and field.
func (h *ReportHandler) SubmitReport(c *gin.Context) {
	var req submitReportRequest
	var attachments []database.Attachment

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		raw := c.PostForm("report")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing report field"})
			return
		}
		if err := json.Unmarshal([]byte(raw), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
			return
		}
		var err error
		attachments, err = collectAttachments(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read attachments"})
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
		return
	}

	rpt, err := models.NewReport(req.Reporter, req.Organisation, req.Purpose, req.Incident, req.Ransomware)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   verr.Error(),
				"section": verr.Section,
				"field":   verr.Field,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.reportService.SaveReport(rpt, attachments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	response := gin.H{"id": id}
	if warnings := submissionWarnings(rpt); len(warnings) > 0 {
		response["warnings"] = warnings
	}
	c.JSON(http.StatusCreated, response)
}

// GetDestinationJSON returns the destination-shaped JSON document for a
// submitted report.
func (h *ReportHandler) GetDestinationJSON(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}
	dest := c.Param("destination")

	doc, err := h.reportService.GetDestinationJSON(id, dest)
	if err != nil {
		if errors.Is(err, report.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Report %d not found", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate destination document"})
		return
	}

	if c.Query("download") == "true" {
		filename := fmt.Sprintf("report_%d_%s.json", id, slug.Make(dest))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

// Completion recomputes the completion percentage for an in-progress form
// state. Called by the UI on every change; the result is never persisted.
func (h *ReportHandler) Completion(c *gin.Context) {
	var req formStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completion_percent": req.completion()})
}

// businessNumberRequest carries a business number to format-check.
type businessNumberRequest struct {
	Value string `json:"value" binding:"required"`
}

// CheckBusinessNumber runs the warn-only business number format check.
func (h *ReportHandler) CheckBusinessNumber(c *gin.Context) {
	var req businessNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing value"})
		return
	}

	valid := validators.IsValidBusinessNumber(req.Value)
	response := gin.H{"valid": valid}
	if !valid {
		response["warning"] = businessNumberWarning
	}
	c.JSON(http.StatusOK, response)
}

func collectAttachments(c *gin.Context) ([]database.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var attachments []database.Attachment
	for _, header := range form.File["attachments"] {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, database.Attachment{
			Filename: filepath.Base(header.Filename),
			Content:  content,
		})
	}
	return attachments, nil
}

// submissionWarnings collects the non-blocking warnings for a validated
// report; currently only the business number format check.
func submissionWarnings(rpt *models.Report) []string {
	var warnings []string
	if rpt.Organisation.ABNStatus == models.ABNStatusHasABN &&
		rpt.Organisation.ABN != "" &&
		!validators.IsValidBusinessNumber(rpt.Organisation.ABN) {
		warnings = append(warnings, businessNumberWarning)
	}
	return warnings
}
