package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/controller"
)

func ReportRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	reports := api.Group("/sites/:project_id/report")
	reports.Get("/", ctrl.GetReport)
	reports.Get("/export", ctrl.ExportMonth)
	reports.Get("/export-detail", ctrl.ExportDetail)
}
