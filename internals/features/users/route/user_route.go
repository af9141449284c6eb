package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/users/controller"
)

// AuthPublicRoutes are reachable without a session.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := userController.NewAuthController(db, v)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", ctrl.Login)
	authGroup.Post("/guest", ctrl.GuestLogin)
	authGroup.Post("/logout", ctrl.Logout)
}

// AuthSessionRoutes need a parsed session; guests included.
func AuthSessionRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := userController.NewAuthController(db, v)

	api.Get("/auth/me", ctrl.Me)
}

// AuthAccountRoutes are for real accounts only.
func AuthAccountRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctrl := userController.NewAuthController(db, v)

	authGroup := api.Group("/auth")
	authGroup.Patch("/password", ctrl.ChangePassword)
	authGroup.Patch("/settings", ctrl.UpdateSettings)
}
