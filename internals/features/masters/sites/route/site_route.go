package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	siteController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/controller"
)

func SiteReadRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := siteController.NewSiteController(db, v)

	sites := api.Group("/sites")
	sites.Get("/", ctrl.List)
	sites.Get("/:id", ctrl.Get)
}

func SiteAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := siteController.NewSiteController(db, v)

	sites := api.Group("/sites")
	sites.Post("/", ctrl.Create)
	sites.Patch("/:id", ctrl.Update)
	sites.Delete("/:id", ctrl.Delete)
}
