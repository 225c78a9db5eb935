package eventValidator

import (
	"strconv"
	"strings"
	"time"

	"lot/middleware"
	"lot/models"
	"lot/validators"

	"github.com/gofiber/fiber/v2"
)

// EventID validates the :id route parameter
func EventID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, ok := validators.UintParam(c.Params("id"))
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Event ID!", nil)
		}

		c.Locals("eventID", eventID)
		return c.Next()
	}
}

// EventList parses and bounds the event listing filters
func EventList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		if limit < 1 || limit > 100 {
			limit = 10
		}
		offset, _ := strconv.Atoi(c.Query("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		errors := make(map[string]string)

		eventType := strings.TrimSpace(c.Query("event_type"))
		switch eventType {
		case "", models.EventWorkshop, models.EventLive, models.EventOnlineQuiz:
		default:
			errors["event_type"] = "Must be one of: workshop, live_event, online_quiz!"
		}

		dateFrom := strings.TrimSpace(c.Query("date_from"))
		if dateFrom != "" {
			if _, err := time.Parse("2006-01-02", dateFrom); err != nil {
				errors["date_from"] = "Must be a date in YYYY-MM-DD format!"
			}
		}
		dateTo := strings.TrimSpace(c.Query("date_to"))
		if dateTo != "" {
			if _, err := time.Parse("2006-01-02", dateTo); err != nil {
				errors["date_to"] = "Must be a date in YYYY-MM-DD format!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			Search    string
			EventType string
			DateFrom  string
			DateTo    string
			Limit     int
			Offset    int
		}{
			Search:    strings.TrimSpace(c.Query("search")),
			EventType: eventType,
			DateFrom:  dateFrom,
			DateTo:    dateTo,
			Limit:     limit,
			Offset:    offset,
		}

		c.Locals("validatedEventList", reqData)
		return c.Next()
	}
}

// AgendaItem validates the agenda item payload
func AgendaItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required"`
			Description string `json:"description"`
			StartTime   string `json:"start_time" validate:"required"`
			EndTime     string `json:"end_time" validate:"required"`
			Speaker     string `json:"speaker"`
			Order       int    `json:"order"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAgendaItem", reqData)
		return c.Next()
	}
}
