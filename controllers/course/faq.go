package courseControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"

	"github.com/gofiber/fiber/v2"
)

func GetCourseFAQs(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var faqs []models.CourseFAQ
	if err := database.Database.Db.Where("course_id = ?", courseID).Order("order_index asc").Find(&faqs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch FAQs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQs fetched successfully!", fiber.Map{
		"data":  faqs,
		"total": len(faqs),
	})
}

// CreateCourseFAQ adds an FAQ to a course (instructor/admin only)
func CreateCourseFAQ(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedFAQ").(*struct {
		Question string `json:"question" validate:"required"`
		Answer   string `json:"answer" validate:"required"`
		Order    int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	faq := models.CourseFAQ{
		CourseID:   courseID,
		Question:   reqData.Question,
		Answer:     reqData.Answer,
		OrderIndex: reqData.Order,
	}
	if err := database.Database.Db.Create(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "FAQ created successfully!", faq)
}

// UpdateCourseFAQ updates an FAQ's allow-listed fields (instructor/admin only)
func UpdateCourseFAQ(c *fiber.Ctx) error {
	faqID := c.Locals("faqID").(uint)

	reqData, ok := c.Locals("validatedFAQUpdate").(*struct {
		Question *string `json:"question"`
		Answer   *string `json:"answer"`
		Order    *int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var faq models.CourseFAQ
	if err := database.Database.Db.Where("id = ?", faqID).First(&faq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Question != nil {
		updates["question"] = *reqData.Question
	}
	if reqData.Answer != nil {
		updates["answer"] = *reqData.Answer
	}
	if reqData.Order != nil {
		updates["order_index"] = *reqData.Order
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := database.Database.Db.Model(&faq).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update FAQ!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ updated successfully!", faq)
}

func DeleteCourseFAQ(c *fiber.Ctx) error {
	faqID := c.Locals("faqID").(uint)

	result := database.Database.Db.Where("id = ?", faqID).Delete(&models.CourseFAQ{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete FAQ!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "FAQ not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQ deleted successfully!", nil)
}
