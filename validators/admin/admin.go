package adminValidator

import (
	"strconv"
	"strings"
	"time"

	"lot/middleware"
	"lot/models"
	"lot/validators"

	"github.com/gofiber/fiber/v2"
)

// UserID validates the :userId route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := validators.UintParam(c.Params("userId"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}

// SlideID validates the :slideId route parameter
func SlideID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slideID, ok := validators.UintParam(c.Params("slideId"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Slide ID!", nil)
		}

		c.Locals("slideID", slideID)
		return c.Next()
	}
}

// UpdateRole validates the role change payload
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Role {
		case models.RoleAdmin, models.RoleInstructor, models.RoleStudent:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Must be one of: admin, instructor, student!",
			})
		}

		c.Locals("validatedRole", reqData.Role)
		return c.Next()
	}
}

// UserList parses the admin user listing filters
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}
		offset, _ := strconv.Atoi(c.Query("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		role := strings.TrimSpace(c.Query("role"))
		switch role {
		case "", models.RoleAdmin, models.RoleInstructor, models.RoleStudent:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Must be one of: admin, instructor, student!",
			})
		}

		reqData := &struct {
			Search string
			Role   string
			Limit  int
			Offset int
		}{
			Search: strings.TrimSpace(c.Query("search")),
			Role:   role,
			Limit:  limit,
			Offset: offset,
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

// PaymentList parses the admin payment listing filters
func PaymentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}
		offset, _ := strconv.Atoi(c.Query("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		status := strings.TrimSpace(c.Query("status"))
		switch status {
		case "", models.PaymentPending, models.PaymentCompleted, models.PaymentFailed, models.PaymentRefunded:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Must be one of: pending, completed, failed, refunded!",
			})
		}

		reqData := &struct {
			Status string
			Limit  int
			Offset int
		}{
			Status: status,
			Limit:  limit,
			Offset: offset,
		}

		c.Locals("validatedPaymentList", reqData)
		return c.Next()
	}
}

// CreateCourse validates the catalog course payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string  `json:"title" validate:"required,min=3,max=200"`
			Description  string  `json:"description" validate:"required"`
			Category     string  `json:"category" validate:"required"`
			Level        string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
			Price        float64 `json:"price" validate:"min=0"`
			Duration     int     `json:"duration" validate:"min=0"`
			InstructorID uint    `json:"instructor_id" validate:"required"`
			Image        string  `json:"image"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the partial course update payload
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
			Description *string  `json:"description"`
			Category    *string  `json:"category"`
			Level       *string  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
			Price       *float64 `json:"price" validate:"omitempty,min=0"`
			Duration    *int     `json:"duration" validate:"omitempty,min=0"`
			Image       *string  `json:"image"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateLecture validates the curriculum lecture payload
func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3,max=200"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			Duration    int    `json:"duration" validate:"min=0"`
			OrderIndex  int    `json:"order" validate:"min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// CreateEvent validates the event scheduling payload
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validators.Check(reqData)
		if errors == nil {
			errors = map[string]string{}
		}
		if reqData.Date != "" {
			if _, err := time.Parse(time.RFC3339, reqData.Date); err != nil {
				errors["date"] = "Must be an RFC 3339 timestamp!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// CreateHeroSlide validates the homepage slide payload
func CreateHeroSlide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required"`
			Subtitle    string `json:"subtitle"`
			Description string `json:"description"`
			Image       string `json:"image"`
			CTAText     string `json:"cta_text"`
			CTALink     string `json:"cta_link"`
			OrderIndex  int    `json:"order" validate:"min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedHeroSlide", reqData)
		return c.Next()
	}
}
