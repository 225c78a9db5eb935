package homeRoutes

import (
	controllers "lot/controllers/home"

	"github.com/gofiber/fiber/v2"
)

// SetupHomeRoutes sets up the public landing page routes
func SetupHomeRoutes(app *fiber.App) {
	homeGroup := app.Group("/home")

	homeGroup.Get("/", controllers.GetHomeContent)
	homeGroup.Get("/slides", controllers.GetHeroSlides)
	homeGroup.Get("/stats", controllers.GetPlatformStats)
}
