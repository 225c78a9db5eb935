package eventControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lot/config"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"
	eventValidator "lot/validators/event"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:eventtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func newTestApp() *fiber.App {
	wa := &utils.WhatsAppClient{} // disabled client, notifications are no-ops
	app := fiber.New()

	app.Get("/event/list", eventValidator.EventList(), GetEvents)
	app.Get("/event/:id", eventValidator.EventID(), GetEventDetails)
	app.Post("/event/:id/rsvp", middleware.JWTMiddleware, eventValidator.EventID(), RSVPEvent(wa))

	return app
}

func createTestUser(t *testing.T, db *gorm.DB, email, phone string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Attendee",
		Email:    email,
		Phone:    phone,
		Password: "not-a-real-hash",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, user.Phone)
	require.NoError(t, err)
	return user, token
}

func createEvent(t *testing.T, db *gorm.DB, capacity int) models.Event {
	t.Helper()

	event := models.Event{
		Title:     "Live Market Session",
		EventType: models.EventLive,
		Date:      time.Now().Add(72 * time.Hour),
		Time:      "18:00",
		Duration:  90,
		Capacity:  capacity,
		EventURL:  "https://meet.test/session",
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func rsvp(t *testing.T, app *fiber.App, eventID uint, token string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/event/%d/rsvp", eventID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed.Message
}

func TestRSVPClaimsSeat(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "attendee@test.com", "+911111111111")
	event := createEvent(t, db, 10)

	status, _ := rsvp(t, app, event.ID, token)
	require.Equal(t, http.StatusOK, status)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	assert.Equal(t, 1, reloaded.Registered)
}

func TestRSVPRejectsFullEvent(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, firstToken := createTestUser(t, db, "first@test.com", "+911111111111")
	second, secondToken := createTestUser(t, db, "second@test.com", "+912222222222")
	event := createEvent(t, db, 1)

	status, _ := rsvp(t, app, event.ID, firstToken)
	require.Equal(t, http.StatusOK, status)

	status, message := rsvp(t, app, event.ID, secondToken)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Event is full!", message)

	// The losing registration must not survive the rollback
	var count int64
	db.Model(&models.EventRegistration{}).Where("user_id = ?", second.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	assert.Equal(t, 1, reloaded.Registered)
}

func TestRSVPDuplicateDoesNotDoubleCount(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "attendee@test.com", "+911111111111")
	event := createEvent(t, db, 10)

	status, _ := rsvp(t, app, event.ID, token)
	require.Equal(t, http.StatusOK, status)

	status, message := rsvp(t, app, event.ID, token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Already registered for this event!", message)

	var count int64
	db.Model(&models.EventRegistration{}).Where("user_id = ? AND event_id = ?", user.ID, event.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	assert.Equal(t, 1, reloaded.Registered)
}

func TestRSVPUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "attendee@test.com", "+911111111111")

	status, message := rsvp(t, app, 9999, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Event not found!", message)
}

func TestGetEventsFiltersByType(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	createEvent(t, db, 10)
	workshop := models.Event{
		Title:     "Hands-on Workshop",
		EventType: models.EventWorkshop,
		Date:      time.Now().Add(24 * time.Hour),
		Capacity:  20,
	}
	require.NoError(t, db.Create(&workshop).Error)

	req := httptest.NewRequest(http.MethodGet, "/event/list?event_type=workshop", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Data struct {
			Total int64 `json:"total"`
			Data  []struct {
				Title string `json:"title"`
			} `json:"data"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	require.EqualValues(t, 1, parsed.Data.Total)
	assert.Equal(t, "Hands-on Workshop", parsed.Data.Data[0].Title)
}
