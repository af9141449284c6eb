package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	workerController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/controller"
)

func WorkerRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := workerController.NewWorkerController(db, v)

	workers := api.Group("/workers")
	workers.Get("/", ctrl.List)
	workers.Post("/", ctrl.Create)
	workers.Post("/bulk", ctrl.BulkCreate)
	workers.Patch("/:id", ctrl.Update)
	workers.Delete("/:id", ctrl.Delete)
}
