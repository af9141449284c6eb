package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/users/route"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	// no session needed
	public := app.Group("/api")
	userRoute.AuthPublicRoutes(public, db, v)

	// session info, guests included
	private := app.Group("/api", auth.SessionMiddleware())
	userRoute.AuthSessionRoutes(private, db, v)

	// account settings, never guests
	account := app.Group("/api", auth.SessionMiddleware(), auth.NonGuestMiddleware())
	userRoute.AuthAccountRoutes(account, db, v)
}
