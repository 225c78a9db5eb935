package userRoutes

import (
	courseControllers "lot/controllers/course"
	"lot/middleware"
	courseValidators "lot/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up routes scoped to the logged-in user's own data
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/enrollments", courseControllers.GetEnrollments)
	userGroup.Get("/certificates", courseControllers.GetMyCertificates)

	userGroup.Get("/wishlist", courseControllers.GetWishlist)
	userGroup.Post("/wishlist/:id", courseValidators.CourseID(), courseControllers.AddToWishlist)
	userGroup.Delete("/wishlist/:id", courseValidators.CourseID(), courseControllers.RemoveFromWishlist)
}
