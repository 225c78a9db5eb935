package adminControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetAnalyticsOverview returns platform-wide aggregate counts
func GetAnalyticsOverview(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, totalEnrollments, completedEnrollments, totalCertificates, totalEvents int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)
	db.Model(&models.Enrollment{}).Where("completed = ?", true).Count(&completedEnrollments)
	db.Model(&models.Certificate{}).Count(&totalCertificates)
	db.Model(&models.Event{}).Count(&totalEvents)

	var totalRevenue float64
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	completionRate := 0.0
	if totalEnrollments > 0 {
		completionRate = float64(completedEnrollments) / float64(totalEnrollments) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"total_users":        totalUsers,
		"total_courses":      totalCourses,
		"total_enrollments":  totalEnrollments,
		"total_certificates": totalCertificates,
		"total_events":       totalEvents,
		"total_revenue":      totalRevenue,
		"completion_rate":    math.Round(completionRate*100) / 100,
	})
}

// GetRevenueAnalytics buckets completed payment amounts by day for the last
// 30 days
func GetRevenueAnalytics(c *fiber.Ctx) error {
	since := now.With(time.Now().AddDate(0, 0, -29)).BeginningOfDay()

	var payments []models.Payment
	if err := database.Database.Db.
		Where("status = ? AND created_at >= ?", models.PaymentCompleted, since).
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch revenue!", nil)
	}

	byDay := map[string]float64{}
	for _, p := range payments {
		byDay[p.CreatedAt.Format("2006-01-02")] += p.Amount
	}

	type DayRevenue struct {
		Date    string  `json:"date"`
		Revenue float64 `json:"revenue"`
	}
	series := make([]DayRevenue, 0, 30)
	total := 0.0
	for d := since; !d.After(time.Now()); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		series = append(series, DayRevenue{Date: key, Revenue: byDay[key]})
		total += byDay[key]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Revenue analytics fetched successfully!", fiber.Map{
		"data":  series,
		"total": total,
	})
}

// GetEnrollmentAnalytics buckets new enrollments by day for the last 30 days
func GetEnrollmentAnalytics(c *fiber.Ctx) error {
	since := now.With(time.Now().AddDate(0, 0, -29)).BeginningOfDay()

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("created_at >= ?", since).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollment analytics!", nil)
	}

	byDay := map[string]int{}
	for _, e := range enrollments {
		byDay[e.CreatedAt.Format("2006-01-02")]++
	}

	type DayCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	series := make([]DayCount, 0, 30)
	for d := since; !d.After(time.Now()); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		series = append(series, DayCount{Date: key, Count: byDay[key]})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment analytics fetched successfully!", fiber.Map{
		"data":  series,
		"total": len(enrollments),
	})
}

// GetPopularCourses ranks courses by student count
func GetPopularCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("students_count desc").Limit(10).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch popular courses!", nil)
	}

	type PopularCourse struct {
		models.Course
		CompletionCount int64 `json:"completion_count"`
	}

	result := make([]PopularCourse, len(courses))
	for i, course := range courses {
		var completions int64
		database.Database.Db.Model(&models.Enrollment{}).
			Where("course_id = ? AND completed = ?", course.ID, true).Count(&completions)
		result[i] = PopularCourse{Course: course, CompletionCount: completions}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular courses fetched successfully!", fiber.Map{
		"data": result,
	})
}

// GetAllUsers lists users with pagination (admin only)
func GetAllUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*struct {
		Search string
		Role   string
		Limit  int
		Offset int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if reqData.Role != "" {
		db = db.Where("role = ?", reqData.Role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Order("created_at desc").Limit(reqData.Limit).Offset(reqData.Offset).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"data":   users,
		"total":  total,
		"limit":  reqData.Limit,
		"offset": reqData.Offset,
	})
}

// UpdateUserRole changes a user's role (admin only)
func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	role := c.Locals("validatedRole").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("role", role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}

// GetAllPayments lists payments across the platform (admin only)
func GetAllPayments(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPaymentList").(*struct {
		Status string
		Limit  int
		Offset int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db.Model(&models.Payment{})
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	var payments []models.Payment
	if err := db.Order("created_at desc").Limit(reqData.Limit).Offset(reqData.Offset).Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"data":   payments,
		"total":  total,
		"limit":  reqData.Limit,
		"offset": reqData.Offset,
	})
}
