package routes

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "github.com/tfunabashi1173-jpg/nexus-worklog/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	v := validator.New()

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, v)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	routeDetails.AttendanceRoutes(app, db, v)

	log.Println("[INFO] Setting up AdminRoutes...")
	routeDetails.AdminRoutes(app, db, v)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})
}
