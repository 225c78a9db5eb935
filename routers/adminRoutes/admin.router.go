package adminRoutes

import (
	adminControllers "lot/controllers/admin"
	courseControllers "lot/controllers/course"
	eventControllers "lot/controllers/event"
	"lot/middleware"
	"lot/models"
	adminValidators "lot/validators/admin"
	courseValidators "lot/validators/course"
	eventValidators "lot/validators/event"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up platform administration and content authoring
// routes. /admin is admin-only; /manage is shared with instructors.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Analytics
	adminGroup.Get("/analytics/overview", adminControllers.GetAnalyticsOverview)
	adminGroup.Get("/analytics/revenue", adminControllers.GetRevenueAnalytics)
	adminGroup.Get("/analytics/enrollments", adminControllers.GetEnrollmentAnalytics)
	adminGroup.Get("/analytics/popular-courses", adminControllers.GetPopularCourses)

	// Users and payments
	adminGroup.Get("/users", adminValidators.UserList(), adminControllers.GetAllUsers)
	adminGroup.Patch("/users/:userId/role", adminValidators.UserID(), adminValidators.UpdateRole(), adminControllers.UpdateUserRole)
	adminGroup.Get("/payments", adminValidators.PaymentList(), adminControllers.GetAllPayments)

	// Homepage slides
	adminGroup.Post("/slides", adminValidators.CreateHeroSlide(), adminControllers.CreateHeroSlide)
	adminGroup.Delete("/slides/:slideId", adminValidators.SlideID(), adminControllers.DeleteHeroSlide)

	manageGroup := app.Group("/manage", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleInstructor))

	// Course catalog
	manageGroup.Post("/courses", adminValidators.CreateCourse(), adminControllers.CreateCourse)
	manageGroup.Patch("/courses/:id", courseValidators.CourseID(), adminValidators.UpdateCourse(), adminControllers.UpdateCourse)
	manageGroup.Delete("/courses/:id", courseValidators.CourseID(), adminControllers.DeleteCourse)

	// Curriculum
	manageGroup.Post("/courses/:id/lectures", courseValidators.CourseID(), adminValidators.CreateLecture(), adminControllers.CreateLecture)
	manageGroup.Delete("/courses/:id/lectures/:lectureId", courseValidators.CourseID(), courseValidators.LectureID(), adminControllers.DeleteLecture)

	// FAQs
	manageGroup.Post("/courses/:id/faqs", courseValidators.CourseID(), courseValidators.CreateFAQ(), courseControllers.CreateCourseFAQ)
	manageGroup.Patch("/faqs/:faqId", courseValidators.FAQID(), courseValidators.UpdateFAQ(), courseControllers.UpdateCourseFAQ)
	manageGroup.Delete("/faqs/:faqId", courseValidators.FAQID(), courseControllers.DeleteCourseFAQ)

	// Events
	manageGroup.Post("/events", adminValidators.CreateEvent(), adminControllers.CreateEvent)
	manageGroup.Post("/events/:id/agenda", eventValidators.EventID(), eventValidators.AgendaItem(), eventControllers.CreateAgendaItem)
	manageGroup.Get("/events/:id/registrants", eventValidators.EventID(), eventControllers.GetEventRegistrants)
}
