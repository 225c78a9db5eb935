package adminControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse adds a new course to the catalog
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string  `json:"title" validate:"required,min=3,max=200"`
		Description  string  `json:"description" validate:"required"`
		Category     string  `json:"category" validate:"required"`
		Level        string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
		Price        float64 `json:"price" validate:"min=0"`
		Duration     int     `json:"duration" validate:"min=0"`
		InstructorID uint    `json:"instructor_id" validate:"required"`
		Image        string  `json:"image"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var instructor models.User
	if err := database.Database.Db.
		Where("id = ? AND role IN ? AND is_deleted = ?", reqData.InstructorID,
			[]string{models.RoleInstructor, models.RoleAdmin}, false).
		First(&instructor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructor not found!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Level:        reqData.Level,
		Price:        reqData.Price,
		Duration:     reqData.Duration,
		InstructorID: reqData.InstructorID,
		Image:        reqData.Image,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits catalog fields of an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
		Description *string  `json:"description"`
		Category    *string  `json:"category"`
		Level       *string  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		Duration    *int     `json:"duration" validate:"omitempty,min=0"`
		Image       *string  `json:"image"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Category != nil {
		updates["category"] = *reqData.Category
	}
	if reqData.Level != nil {
		updates["level"] = *reqData.Level
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.Duration != nil {
		updates["duration"] = *reqData.Duration
	}
	if reqData.Image != nil {
		updates["image"] = *reqData.Image
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&course).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course from the catalog
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	result := database.Database.Db.Model(&models.Course{}).
		Where("id = ? AND is_deleted = ?", courseID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateLecture appends a lecture to a course's curriculum
func CreateLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title       string `json:"title" validate:"required,min=3,max=200"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		Duration    int    `json:"duration" validate:"min=0"`
		OrderIndex  int    `json:"order" validate:"min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lecture := models.CourseLecture{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

// DeleteLecture removes a lecture from a course's curriculum. Progress rows
// referencing it stay behind; completion snapshots on enrollments are not
// recomputed retroactively.
func DeleteLecture(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	lectureID := c.Locals("lectureID").(uint)

	result := database.Database.Db.
		Where("id = ? AND course_id = ?", lectureID, courseID).
		Delete(&models.CourseLecture{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

// CreateEvent schedules a new event
func CreateEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEvent").(*struct {
		Title        string  `json:"title" validate:"required,min=3,max=200"`
		Description  string  `json:"description"`
		EventType    string  `json:"event_type" validate:"required,oneof=workshop live_event online_quiz"`
		InstructorID uint    `json:"instructor_id" validate:"required"`
		Date         string  `json:"date" validate:"required"` // RFC 3339
		Time         string  `json:"time"`
		Duration     int     `json:"duration" validate:"min=0"`
		Location     string  `json:"location"`
		Image        string  `json:"image"`
		Capacity     int     `json:"capacity" validate:"required,min=1"`
		EventURL     *string `json:"event_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	date, err := time.Parse(time.RFC3339, reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event date!", nil)
	}

	event := models.Event{
		Title:        reqData.Title,
		Description:  reqData.Description,
		EventType:    reqData.EventType,
		InstructorID: reqData.InstructorID,
		Date:         date,
		Time:         reqData.Time,
		Duration:     reqData.Duration,
		Location:     reqData.Location,
		Image:        reqData.Image,
		Capacity:     reqData.Capacity,
	}
	if reqData.EventURL != nil {
		event.EventURL = *reqData.EventURL
	}
	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

// CreateHeroSlide adds a slide to the homepage carousel
func CreateHeroSlide(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedHeroSlide").(*struct {
		Title       string `json:"title" validate:"required"`
		Subtitle    string `json:"subtitle"`
		Description string `json:"description"`
		Image       string `json:"image"`
		CTAText     string `json:"cta_text"`
		CTALink     string `json:"cta_link"`
		OrderIndex  int    `json:"order" validate:"min=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slide := models.HeroSlide{
		Title:       reqData.Title,
		Subtitle:    reqData.Subtitle,
		Description: reqData.Description,
		Image:       reqData.Image,
		CTAText:     reqData.CTAText,
		CTALink:     reqData.CTALink,
		OrderIndex:  reqData.OrderIndex,
		IsActive:    true,
	}
	if err := database.Database.Db.Create(&slide).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slide!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Hero slide created successfully!", slide)
}

// DeleteHeroSlide removes a slide from the homepage carousel
func DeleteHeroSlide(c *fiber.Ctx) error {
	slideID := c.Locals("slideID").(uint)

	result := database.Database.Db.Where("id = ?", slideID).Delete(&models.HeroSlide{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete slide!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slide not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hero slide deleted successfully!", nil)
}
