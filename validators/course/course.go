package courseValidator

import (
	"strconv"
	"strings"

	"lot/middleware"
	"lot/validators"

	"github.com/gofiber/fiber/v2"
)

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := validators.UintParam(c.Params("id"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// LectureID validates the :lectureId route parameter
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := validators.UintParam(c.Params("lectureId"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// FAQID validates the :faqId route parameter
func FAQID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		faqID, ok := validators.UintParam(c.Params("faqId"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid FAQ ID!", nil)
		}

		c.Locals("faqID", faqID)
		return c.Next()
	}
}

// CourseList parses and bounds the catalog listing filters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}
		offset, _ := strconv.Atoi(c.Query("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		priceMin, _ := strconv.ParseFloat(c.Query("price_min", "0"), 64)
		priceMax, _ := strconv.ParseFloat(c.Query("price_max", "0"), 64)
		if priceMin < 0 || priceMax < 0 || (priceMax > 0 && priceMax < priceMin) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"price": "Invalid price range!",
			})
		}

		level := strings.TrimSpace(c.Query("level"))
		if level != "" && level != "Beginner" && level != "Intermediate" && level != "Advanced" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"level": "Must be one of: Beginner, Intermediate, Advanced!",
			})
		}

		reqData := &struct {
			Search     string
			Category   string
			Level      string
			Instructor string
			PriceMin   float64
			PriceMax   float64
			Limit      int
			Offset     int
		}{
			Search:     strings.TrimSpace(c.Query("search")),
			Category:   strings.TrimSpace(c.Query("category")),
			Level:      level,
			Instructor: strings.TrimSpace(c.Query("instructor")),
			PriceMin:   priceMin,
			PriceMax:   priceMax,
			Limit:      limit,
			Offset:     offset,
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// UpdateProgress validates the lecture progress payload
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WatchedDuration *int  `json:"watched_duration" validate:"required,min=0"`
			Completed       *bool `json:"completed" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

func CreateFAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question string `json:"question" validate:"required"`
			Answer   string `json:"answer" validate:"required"`
			Order    int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFAQ", reqData)
		return c.Next()
	}
}

func UpdateFAQ() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question *string `json:"question"`
			Answer   *string `json:"answer"`
			Order    *int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedFAQUpdate", reqData)
		return c.Next()
	}
}
