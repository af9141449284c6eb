package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	entryRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/route"
	reportRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/route"
	siteRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/route"
	worktypeRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/route"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

// AttendanceRoutes mounts everything a logged-in user or scoped guest
// touches day to day. Guest site scoping happens in the controllers.
func AttendanceRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	api := app.Group("/api/u", auth.SessionMiddleware())

	entryRoute.EntryRoutes(api, db, v)
	reportRoute.ReportRoutes(api, db)
	siteRoute.SiteReadRoutes(api, db, v)
	worktypeRoute.WorkTypeReadRoutes(api, db, v)
}
