package eventControllers

import (
	"errors"
	"fmt"
	"log"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrEventFull is returned when a registration would exceed event capacity
var ErrEventFull = errors.New("event is at capacity")

// RegisterForEvent creates the registration for (userID, eventID) and claims
// a seat. The registration insert is guarded by the unique index, and the
// seat is claimed with a conditional increment so that capacity check and
// counter update cannot race: zero rows affected means the event is full and
// the transaction rolls back. Returns the registration and whether this
// call created it.
func RegisterForEvent(tx *gorm.DB, userID, eventID uint) (*models.EventRegistration, bool, error) {
	registration := models.EventRegistration{
		UserID:  userID,
		EventID: eventID,
		Status:  models.RegistrationConfirmed,
	}

	if err := tx.Create(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.EventRegistration
			if err := tx.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}

	result := tx.Model(&models.Event{}).
		Where("id = ? AND registered < capacity", eventID).
		UpdateColumn("registered", gorm.Expr("registered + 1"))
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, ErrEventFull
	}

	return &registration, true, nil
}

// GetEvents lists events with filters and pagination
func GetEvents(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEventList").(*struct {
		Search    string
		EventType string
		DateFrom  string
		DateTo    string
		Limit     int
		Offset    int
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db.Model(&models.Event{})

	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if reqData.EventType != "" {
		db = db.Where("event_type = ?", reqData.EventType)
	}
	if reqData.DateFrom != "" {
		db = db.Where("date >= ?", reqData.DateFrom)
	}
	if reqData.DateTo != "" {
		db = db.Where("date <= ?", reqData.DateTo)
	}

	var total int64
	db.Count(&total)

	var events []models.Event
	if err := db.Order("date asc").Limit(reqData.Limit).Offset(reqData.Offset).Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	type EventWithInstructor struct {
		models.Event
		InstructorName string `json:"instructor_name"`
	}

	result := make([]EventWithInstructor, len(events))
	for i, event := range events {
		var instructor models.User
		database.Database.Db.Where("id = ?", event.InstructorID).First(&instructor)
		result[i] = EventWithInstructor{Event: event, InstructorName: instructor.Name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"data":   result,
		"total":  total,
		"limit":  reqData.Limit,
		"offset": reqData.Offset,
	})
}

// GetEventDetails returns one event with instructor and agenda
func GetEventDetails(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(uint)
	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var instructor models.User
	db.Where("id = ?", event.InstructorID).First(&instructor)

	var agenda []models.EventAgendaItem
	db.Where("event_id = ?", eventID).Order("order_index asc").Find(&agenda)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event fetched successfully!", fiber.Map{
		"event": event,
		"instructor": fiber.Map{
			"id":    instructor.ID,
			"name":  instructor.Name,
			"bio":   instructor.Bio,
			"image": instructor.ProfileImage,
		},
		"agenda": agenda,
	})
}

// RSVPEvent registers the caller for an event with a WhatsApp confirmation
func RSVPEvent(wa *utils.WhatsAppClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		eventID := c.Locals("eventID").(uint)
		db := database.Database.Db

		var event models.Event
		if err := db.Where("id = ?", eventID).First(&event).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		var registration *models.EventRegistration
		var created bool
		err := db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			registration, created, txErr = RegisterForEvent(tx, userID, eventID)
			return txErr
		})
		if err != nil {
			if errors.Is(err, ErrEventFull) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event is full!", nil)
			}
			log.Printf("Error registering for event: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register for event!", nil)
		}
		if !created {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already registered for this event!", nil)
		}

		// Confirmation is best-effort and never fails the registration
		go wa.SendEventRSVPMessage(user.Phone, user.Name, event.Title, event.Date.Format("2006-01-02"), event.Time, event.EventURL)

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully registered for event!", fiber.Map{
			"registration_id":   registration.ID,
			"event_url":         event.EventURL,
			"calendar_download": fmt.Sprintf("/event/%d/calendar", eventID),
		})
	}
}

// GetMySchedule lists the caller's registered events
func GetMySchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var registrations []models.EventRegistration
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch schedule!", nil)
	}

	type ScheduleEntry struct {
		models.Event
		RegistrationStatus string `json:"registration_status"`
	}

	result := make([]ScheduleEntry, 0, len(registrations))
	for _, reg := range registrations {
		var event models.Event
		if err := database.Database.Db.Where("id = ?", reg.EventID).First(&event).Error; err != nil {
			continue
		}
		result = append(result, ScheduleEntry{Event: event, RegistrationStatus: reg.Status})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schedule fetched successfully!", fiber.Map{
		"data":  result,
		"total": len(result),
	})
}

// GetCalendarFile generates an .ics calendar payload for an event
func GetCalendarFile(c *fiber.Ctx) error {
	eventID := c.Locals("eventID").(uint)

	var event models.Event
	if err := database.Database.Db.Where("id = ?", eventID).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	location := event.Location
	if location == "" {
		location = "Online"
	}

	ics := fmt.Sprintf(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//LOT Platform//Event//EN
BEGIN:VEVENT
SUMMARY:%s
DESCRIPTION:%s
DTSTART:%sT%s00
DURATION:PT%dM
LOCATION:%s
URL:%s
END:VEVENT
END:VCALENDAR`,
		event.Title,
		event.Description,
		event.Date.Format("20060102"),
		strings.ReplaceAll(event.Time, ":", ""),
		event.Duration,
		location,
		event.EventURL,
	)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Calendar file generated!", fiber.Map{
		"filename":     strings.ReplaceAll(event.Title, " ", "_") + ".ics",
		"content":      ics,
		"content_type": "text/calendar",
	})
}
