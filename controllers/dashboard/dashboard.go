package dashboardControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"
	"math"

	"github.com/gofiber/fiber/v2"
)

// GetOverview returns headline stats for the caller
func GetOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	var registrationCount int64
	db.Model(&models.EventRegistration{}).Where("user_id = ?", userID).Count(&registrationCount)

	var certificateCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", userID).Count(&certificateCount)

	var badges []models.UserBadge
	db.Where("user_id = ?", userID).Find(&badges)

	completedCourses := 0
	progressSum := 0.0
	for _, e := range enrollments {
		if e.Completed {
			completedCourses++
		}
		progressSum += e.Progress
	}
	avgProgress := 0.0
	if len(enrollments) > 0 {
		avgProgress = progressSum / float64(len(enrollments))
	}

	badgeNames := make([]string, len(badges))
	for i, b := range badges {
		badgeNames[i] = b.BadgeName
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":       len(enrollments),
		"completed_courses":   completedCourses,
		"in_progress_courses": len(enrollments) - completedCourses,
		"upcoming_events":     registrationCount,
		"certificates_earned": certificateCount,
		"average_progress":    math.Round(avgProgress*100) / 100,
		"badges":              badgeNames,
	})
}

// GetMyCourses lists the caller's enrolled courses with progress
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseEntry struct {
		ID             uint    `json:"id"`
		Title          string  `json:"title"`
		InstructorName string  `json:"instructor_name"`
		Progress       float64 `json:"progress"`
		Completed      bool    `json:"completed"`
		Image          string  `json:"image"`
		Level          string  `json:"level"`
	}

	result := make([]CourseEntry, 0, len(enrollments))
	for _, e := range enrollments {
		var course models.Course
		if err := database.Database.Db.Where("id = ?", e.CourseID).First(&course).Error; err != nil {
			continue
		}
		var instructor models.User
		database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)
		result = append(result, CourseEntry{
			ID:             course.ID,
			Title:          course.Title,
			InstructorName: instructor.Name,
			Progress:       e.Progress,
			Completed:      e.Completed,
			Image:          course.Image,
			Level:          course.Level,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"data":  result,
		"total": len(result),
	})
}

// GetProgress returns a per-course progress summary for the caller
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	type ProgressEntry struct {
		CourseID           uint    `json:"course_id"`
		CourseTitle        string  `json:"course_title"`
		TotalLectures      int64   `json:"total_lectures"`
		CompletedLectures  int64   `json:"completed_lectures"`
		ProgressPercentage float64 `json:"progress_percentage"`
		Completed          bool    `json:"completed"`
	}

	result := make([]ProgressEntry, 0, len(enrollments))
	for _, e := range enrollments {
		var course models.Course
		if err := db.Where("id = ?", e.CourseID).First(&course).Error; err != nil {
			continue
		}

		var totalLectures int64
		db.Model(&models.CourseLecture{}).Where("course_id = ?", e.CourseID).Count(&totalLectures)
		var completedLectures int64
		db.Model(&models.LectureProgress{}).Where("enrollment_id = ? AND completed = ?", e.ID, true).Count(&completedLectures)

		result = append(result, ProgressEntry{
			CourseID:           course.ID,
			CourseTitle:        course.Title,
			TotalLectures:      totalLectures,
			CompletedLectures:  completedLectures,
			ProgressPercentage: e.Progress,
			Completed:          e.Completed,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"data":  result,
		"total": len(result),
	})
}
