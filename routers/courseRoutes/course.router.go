package courseRoutes

import (
	controllers "lot/controllers/course"
	"lot/middleware"
	"lot/utils"
	validators "lot/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the catalog, enrollment, progress and
// certificate routes
func SetupCourseRoutes(app *fiber.App, wa *utils.WhatsAppClient) {
	courseGroup := app.Group("/course")

	// Catalog (public)
	courseGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/instructors", controllers.GetInstructors)

	// Lecture progress. Registered before /:id so the static segment wins.
	courseGroup.Post("/lecture/:lectureId/progress", middleware.JWTMiddleware, validators.LectureID(), validators.UpdateProgress(), controllers.UpdateLectureProgress)

	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:id/faqs", validators.CourseID(), controllers.GetCourseFAQs)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse(wa))
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	// Certificates
	courseGroup.Post("/:id/certificate", middleware.JWTMiddleware, validators.CourseID(), controllers.GenerateCertificate(wa))

	// Public verification endpoint, no auth
	app.Get("/certificate/verify/:number", controllers.VerifyCertificate)
}
