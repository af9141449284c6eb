package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	importRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/route"
	guestlinkRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/route"
	contractorRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/route"
	siteRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/route"
	workerRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/route"
	worktypeRoute "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/route"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

// AdminRoutes mounts the master data, import, and guest link surfaces.
func AdminRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	api := app.Group("/api/a",
		auth.SessionMiddleware(),
		auth.AdminOnlyMiddleware(),
	)

	contractorRoute.ContractorRoutes(api, db, v)
	workerRoute.WorkerRoutes(api, db, v)
	siteRoute.SiteAdminRoutes(api, db, v)
	worktypeRoute.WorkTypeAdminRoutes(api, db, v)
	guestlinkRoute.GuestLinkAdminRoutes(api, db, v)
	importRoute.ImportAdminRoutes(api, db, v)
}
