package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	importController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/controller"
)

func ImportAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := importController.NewImportController(db, v)

	imports := api.Group("/imports")
	imports.Post("/attendance", ctrl.ImportAttendance)
	imports.Post("/workers", ctrl.ImportWorkers)

	imports.Get("/mappings", ctrl.ListMappings)
	imports.Post("/mappings", ctrl.SaveMapping)
	imports.Delete("/mappings/:id", ctrl.DeleteMapping)
}
