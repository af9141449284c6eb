package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	guestlinkController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/controller"
)

func GuestLinkAdminRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := guestlinkController.NewGuestLinkController(db, v)

	links := api.Group("/guest-links")
	links.Get("/", ctrl.List)
	links.Post("/", ctrl.Issue)
	links.Delete("/:token", ctrl.Revoke)
}
