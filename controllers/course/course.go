package courseControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists courses with catalog filters and pagination
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Search     string
		Category   string
		Level      string
		Instructor string
		PriceMin   float64
		PriceMax   float64
		Limit      int
		Offset     int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db.Model(&models.Course{}).Where("courses.is_deleted = ?", false)

	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("courses.title LIKE ? OR courses.description LIKE ?", like, like)
	}
	if reqData.Category != "" {
		db = db.Where("courses.category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("courses.level = ?", reqData.Level)
	}
	if reqData.Instructor != "" {
		db = db.Joins("JOIN users ON users.id = courses.instructor_id").
			Where("users.name LIKE ?", "%"+reqData.Instructor+"%")
	}
	if reqData.PriceMin > 0 {
		db = db.Where("courses.price >= ?", reqData.PriceMin)
	}
	if reqData.PriceMax > 0 {
		db = db.Where("courses.price <= ?", reqData.PriceMax)
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Order("courses.created_at desc").Limit(reqData.Limit).Offset(reqData.Offset).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithInstructor struct {
		models.Course
		InstructorName string `json:"instructor_name"`
	}

	result := make([]CourseWithInstructor, len(courses))
	for i, course := range courses {
		var instructor models.User
		database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)
		result[i] = CourseWithInstructor{Course: course, InstructorName: instructor.Name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"data":   result,
		"total":  total,
		"limit":  reqData.Limit,
		"offset": reqData.Offset,
	})
}

// GetCourseDetails returns one course with curriculum, FAQs, reviews and
// instructor info
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var instructor models.User
	db.Where("id = ?", course.InstructorID).First(&instructor)

	var curriculum []models.CourseLecture
	db.Where("course_id = ?", courseID).Order("order_index asc").Find(&curriculum)

	var faqs []models.CourseFAQ
	db.Where("course_id = ?", courseID).Order("order_index asc").Find(&faqs)

	var reviews []models.CourseReview
	db.Where("course_id = ?", courseID).Order("created_at desc").Limit(10).Find(&reviews)

	type ReviewWithUser struct {
		models.CourseReview
		UserName  string `json:"user_name"`
		UserImage string `json:"user_image"`
	}
	reviewsData := make([]ReviewWithUser, len(reviews))
	for i, review := range reviews {
		var reviewer models.User
		db.Where("id = ?", review.UserID).First(&reviewer)
		reviewsData[i] = ReviewWithUser{
			CourseReview: review,
			UserName:     reviewer.Name,
			UserImage:    reviewer.ProfileImage,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": course,
		"instructor": fiber.Map{
			"id":    instructor.ID,
			"name":  instructor.Name,
			"bio":   instructor.Bio,
			"image": instructor.ProfileImage,
		},
		"curriculum": curriculum,
		"faqs":       faqs,
		"reviews":    reviewsData,
	})
}

// GetInstructors lists instructors with their course counts (filter dropdown)
func GetInstructors(c *fiber.Ctx) error {
	type InstructorRow struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		CourseCount int    `json:"course_count"`
	}

	var instructors []InstructorRow
	err := database.Database.Db.Model(&models.User{}).
		Select("users.id, users.name, COUNT(courses.id) as course_count").
		Joins("JOIN courses ON courses.instructor_id = users.id AND courses.is_deleted = ?", false).
		Where("users.role IN ?", []string{models.RoleInstructor, models.RoleAdmin}).
		Group("users.id, users.name").
		Order("users.name asc").
		Scan(&instructors).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch instructors!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructors fetched successfully!", fiber.Map{
		"data":  instructors,
		"total": len(instructors),
	})
}
