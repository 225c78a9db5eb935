package eventRoutes

import (
	controllers "lot/controllers/event"
	"lot/middleware"
	"lot/utils"
	validators "lot/validators/event"

	"github.com/gofiber/fiber/v2"
)

// SetupEventRoutes sets up event discovery, RSVP and schedule routes
func SetupEventRoutes(app *fiber.App, wa *utils.WhatsAppClient) {
	eventGroup := app.Group("/event")

	eventGroup.Get("/list", validators.EventList(), controllers.GetEvents)

	// Static segment before /:id
	eventGroup.Get("/schedule/my", middleware.JWTMiddleware, controllers.GetMySchedule)

	eventGroup.Get("/:id", validators.EventID(), controllers.GetEventDetails)
	eventGroup.Get("/:id/agenda", validators.EventID(), controllers.GetEventAgenda)
	eventGroup.Get("/:id/calendar", validators.EventID(), controllers.GetCalendarFile)

	eventGroup.Post("/:id/rsvp", middleware.JWTMiddleware, validators.EventID(), controllers.RSVPEvent(wa))
}
