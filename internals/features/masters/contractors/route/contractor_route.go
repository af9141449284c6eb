package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contractorController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/controller"
)

func ContractorRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := contractorController.NewContractorController(db, v)

	contractors := api.Group("/contractors")
	contractors.Get("/", ctrl.List)
	contractors.Post("/", ctrl.Create)
	contractors.Patch("/:id", ctrl.Update)
	contractors.Delete("/:id", ctrl.Delete)
}
