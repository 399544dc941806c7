package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberreport/backend/internal/routing"
	"github.com/cyberreport/backend/internal/services/export"
	"github.com/cyberreport/backend/internal/services/report"
)

// DashboardHandler serves the admin dashboard: report summaries, CSV
// download, destination list, and the dev-only purge.
type DashboardHandler struct {
	exportService *export.Service
	reportService *report.Service
	allowPurge    bool
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(exportService *export.Service, reportService *report.Service, allowPurge bool) *DashboardHandler {
	return &DashboardHandler{
		exportService: exportService,
		reportService: reportService,
		allowPurge:    allowPurge,
	}
}

// ListReports returns summaries of all stored reports, newest first,
// optionally filtered by the free-text query parameter q.
func (h *DashboardHandler) ListReports(c *gin.Context) {
	rows, err := h.exportService.FetchReports(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "reports": rows})
}

// DownloadCSV streams the current summaries as a CSV file.
func (h *DashboardHandler) DownloadCSV(c *gin.Context) {
	rows, err := h.exportService.FetchReports(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteCSV(&buf, rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reports.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ListDestinations returns the named destination agencies.
func (h *DashboardHandler) ListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"destinations": routing.KnownDestinations()})
}

// PurgeReports deletes every report and attachment. Gated behind the
// ALLOW_PURGE setting; meant for development databases only.
func (h *DashboardHandler) PurgeReports(c *gin.Context) {
	if !h.allowPurge {
		c.JSON(http.StatusForbidden, gin.H{"error": "Purge is disabled"})
		return
	}
	if err := h.reportService.PurgeAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to purge reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reports and attachments removed"})
}
