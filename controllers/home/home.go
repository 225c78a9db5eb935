package homeControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetHomeContent aggregates everything the landing page needs in one call:
// active hero slides, headline stats, featured courses and upcoming events.
func GetHomeContent(c *fiber.Ctx) error {
	db := database.Database.Db

	var slides []models.HeroSlide
	if err := db.Where("is_active = ?", true).Order("order_index asc").Find(&slides).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch home content!", nil)
	}

	var stats []models.PlatformStat
	db.Find(&stats)

	var featured []models.Course
	db.Where("is_deleted = ?", false).Order("students_count desc, rating desc").Limit(6).Find(&featured)

	var upcoming []models.Event
	db.Where("date >= ?", time.Now()).Order("date asc").Limit(4).Find(&upcoming)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Home content fetched successfully!", fiber.Map{
		"hero_slides":     slides,
		"stats":           stats,
		"featured":        featured,
		"upcoming_events": upcoming,
	})
}

// GetHeroSlides returns the active carousel slides in display order
func GetHeroSlides(c *fiber.Ctx) error {
	var slides []models.HeroSlide
	if err := database.Database.Db.Where("is_active = ?", true).
		Order("order_index asc").Find(&slides).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slides!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hero slides fetched successfully!", fiber.Map{
		"data": slides,
	})
}

// GetPlatformStats returns homepage headline figures, computing live counts
// when no curated rows exist.
func GetPlatformStats(c *fiber.Ctx) error {
	var stats []models.PlatformStat
	if err := database.Database.Db.Find(&stats).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	if len(stats) > 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
			"data": stats,
		})
	}

	var courses, learners, certificates int64
	database.Database.Db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&courses)
	database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&learners)
	database.Database.Db.Model(&models.Certificate{}).Count(&certificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
		"data": fiber.Map{
			"courses":      courses,
			"learners":     learners,
			"certificates": certificates,
		},
	})
}
