package eventControllers

import (
	"lot/database"
	"lot/middleware"
	"lot/models"

	"github.com/gofiber/fiber/v2"
)

func GetEventAgenda(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(uint)

	if err := database.Database.Db.Where("id = ?", eventID).First(&models.Event{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var agenda []models.EventAgendaItem
	if err := database.Database.Db.Where("event_id = ?", eventID).Order("order_index asc").Find(&agenda).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch agenda!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agenda fetched successfully!", fiber.Map{
		"data":  agenda,
		"total": len(agenda),
	})
}

// CreateAgendaItem adds an agenda entry to an event (admin only)
func CreateAgendaItem(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(uint)

	reqData, ok := c.Locals("validatedAgendaItem").(*struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		StartTime   string `json:"start_time" validate:"required"`
		EndTime     string `json:"end_time" validate:"required"`
		Speaker     string `json:"speaker"`
		Order       int    `json:"order"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := database.Database.Db.Where("id = ?", eventID).First(&models.Event{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	item := models.EventAgendaItem{
		EventID:     eventID,
		Title:       reqData.Title,
		Description: reqData.Description,
		StartTime:   reqData.StartTime,
		EndTime:     reqData.EndTime,
		Speaker:     reqData.Speaker,
		OrderIndex:  reqData.Order,
	}
	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create agenda item!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Agenda item created successfully!", item)
}

// GetEventRegistrants lists an event's registrants (admin only)
func GetEventRegistrants(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(uint)

	if err := database.Database.Db.Where("id = ?", eventID).First(&models.Event{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var registrations []models.EventRegistration
	if err := database.Database.Db.Where("event_id = ?", eventID).Order("created_at asc").Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrants!", nil)
	}

	type Registrant struct {
		models.EventRegistration
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
		UserPhone string `json:"user_phone"`
	}

	result := make([]Registrant, len(registrations))
	for i, reg := range registrations {
		var user models.User
		database.Database.Db.Where("id = ?", reg.UserID).First(&user)
		result[i] = Registrant{
			EventRegistration: reg,
			UserName:          user.Name,
			UserEmail:         user.Email,
			UserPhone:         user.Phone,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrants fetched successfully!", fiber.Map{
		"data":  result,
		"total": len(result),
	})
}
