package courseControllers

import (
	"errors"
	"lot/database"
	"lot/middleware"
	"lot/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AddToWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	item := models.Wishlist{UserID: userID, CourseID: courseID}
	if err := database.Database.Db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already in wishlist!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add course to wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to wishlist!", fiber.Map{
		"wishlist_id": item.ID,
	})
}

func RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	result := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&models.Wishlist{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from wishlist!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found in wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from wishlist!", nil)
}

func GetWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []models.Wishlist
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch wishlist!", nil)
	}

	type WishlistWithCourse struct {
		models.Wishlist
		Title          string  `json:"title"`
		Description    string  `json:"description"`
		Price          float64 `json:"price"`
		Image          string  `json:"image"`
		Rating         float64 `json:"rating"`
		Level          string  `json:"level"`
		InstructorName string  `json:"instructor_name"`
	}

	result := make([]WishlistWithCourse, len(items))
	for i, item := range items {
		var course models.Course
		database.Database.Db.Where("id = ?", item.CourseID).First(&course)
		var instructor models.User
		database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)
		result[i] = WishlistWithCourse{
			Wishlist:       item,
			Title:          course.Title,
			Description:    course.Description,
			Price:          course.Price,
			Image:          course.Image,
			Rating:         course.Rating,
			Level:          course.Level,
			InstructorName: instructor.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wishlist fetched successfully!", fiber.Map{
		"data":  result,
		"total": len(result),
	})
}
