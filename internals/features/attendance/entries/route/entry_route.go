package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	entryController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/controller"
)

// EntryRoutes mounts the day editor. Guest write access is enforced in
// the controller against the guest link, not here.
func EntryRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := entryController.NewEntryController(db, v)

	entries := api.Group("/sites/:project_id/entries")
	entries.Get("/", ctrl.GetDay)
	entries.Post("/", ctrl.SaveDay)
	entries.Delete("/", ctrl.ClearDay)
}
