package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	worktypeController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/controller"
)

func WorkTypeReadRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := worktypeController.NewWorkTypeController(db, v)

	api.Get("/work-categories", ctrl.ListCategories)
	api.Get("/work-types", ctrl.ListTypes)
}

func WorkTypeAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := worktypeController.NewWorkTypeController(db, v)

	api.Post("/work-categories", ctrl.CreateCategory)
	api.Delete("/work-categories/:id", ctrl.DeleteCategory)

	api.Post("/work-types", ctrl.CreateType)
	api.Patch("/work-types/:id", ctrl.UpdateType)
	api.Delete("/work-types/:id", ctrl.DeleteType)
}
