package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cyberreport/backend/internal/config"
	"github.com/cyberreport/backend/internal/handlers"
	"github.com/cyberreport/backend/internal/services/export"
	"github.com/cyberreport/backend/internal/services/report"
)

// SetupRoutes wires the services and registers all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	reportService := report.NewService(db)
	exportService := export.NewService(db)

	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(exportService, reportService, cfg.AllowPurge)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Draft lifecycle
		api.POST("/drafts", reportHandler.SaveDraft)
		api.GET("/drafts/:reference", reportHandler.LoadDraft)
		api.POST("/drafts/:reference/submit", reportHandler.SubmitDraft)

		// Direct submission and destination exports
		api.POST("/reports", reportHandler.SubmitReport)
		api.GET("/reports", dashboardHandler.ListReports)
		api.GET("/reports/:id/destinations/:destination", reportHandler.GetDestinationJSON)
		api.DELETE("/reports", dashboardHandler.PurgeReports)

		// Dashboard helpers
		api.GET("/exports/reports.csv", dashboardHandler.DownloadCSV)
		api.GET("/destinations", dashboardHandler.ListDestinations)

		// Form helpers for the UI layer
		api.POST("/completion", reportHandler.Completion)
		api.POST("/validators/business-number", reportHandler.CheckBusinessNumber)
	}
}
