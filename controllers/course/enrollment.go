package courseControllers

import (
	"errors"
	"log"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateEnrollment inserts the enrollment for (userID, courseID) and bumps
// the course's cached students_count in the same transaction. The unique
// index on (user_id, course_id) is the authority under concurrency: a
// duplicate-key error from a racing insert is folded into the "already
// enrolled" result. Returns the enrollment and whether this call created it.
func CreateEnrollment(tx *gorm.DB, userID, courseID uint) (*models.Enrollment, bool, error) {
	enrollment := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}

	if err := tx.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Enrollment
			if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}

	if err := tx.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("students_count", gorm.Expr("students_count + 1")).Error; err != nil {
		return nil, false, err
	}

	return &enrollment, true, nil
}

// EnrollInCourse enrolls the caller directly. Paid courses go through the
// payment flow; only free courses can be enrolled here.
func EnrollInCourse(wa *utils.WhatsAppClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		courseID := c.Locals("courseID").(uint)

		var course models.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}

		if course.Price > 0 {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "This course requires payment. Use the checkout flow!", nil)
		}

		var enrollment *models.Enrollment
		var created bool
		err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			enrollment, created, txErr = CreateEnrollment(tx, userID, courseID)
			return txErr
		})
		if err != nil {
			log.Printf("Error creating enrollment: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		if !created {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}

		// Best-effort welcome notifications, never fail the enrollment
		go func(user models.User, course models.Course) {
			wa.SendEnrollmentMessage(user.Phone, user.Name, course.Title, "")
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, course.Title); err != nil {
				log.Printf("Failed to send enrollment email: %v", err)
			}
		}(user, course)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
	}
}

// GetEnrollments lists the caller's enrollments with course info
func GetEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseTitle string  `json:"course_title"`
		CourseImage string  `json:"course_image"`
		CourseLevel string  `json:"course_level"`
		CoursePrice float64 `json:"course_price"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course models.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:  e,
			CourseTitle: course.Title,
			CourseImage: course.Image,
			CourseLevel: course.Level,
			CoursePrice: course.Price,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
