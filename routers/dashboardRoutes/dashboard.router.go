package dashboardRoutes

import (
	controllers "lot/controllers/dashboard"
	"lot/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard", middleware.JWTMiddleware)

	dashboardGroup.Get("/overview", controllers.GetOverview)
	dashboardGroup.Get("/courses", controllers.GetMyCourses)
	dashboardGroup.Get("/progress", controllers.GetProgress)
}
