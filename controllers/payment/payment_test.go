package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lot/config"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"
	paymentValidator "lot/validators/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testRazorpaySecret = "test-razorpay-secret"

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:paymenttest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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
	rz := utils.NewRazorpayClient("rzp_test_key", testRazorpaySecret)
	app := fiber.New()

	app.Post("/payment/verify", middleware.JWTMiddleware, paymentValidator.VerifyPayment(), VerifyPayment(rz))
	app.Get("/payment/transactions", middleware.JWTMiddleware, GetTransactions)

	return app
}

func createTestUser(t *testing.T, db *gorm.DB, email, phone string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Buyer",
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

// signPayment produces the signature the gateway would attach to a
// successful checkout callback.
func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testRazorpaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyBody(orderID, paymentID, signature string) map[string]interface{} {
	return map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
		"razorpay_signature":  signature,
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed struct {
		Status  bool                   `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed.Data
}

func TestVerifyPaymentCreatesEnrollmentOnce(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "buyer@test.com", "+911111111111")

	course := models.Course{Title: "Pro Course", Category: "Finance", Level: "Advanced", Price: 999}
	require.NoError(t, db.Create(&course).Error)

	courseID := course.ID
	payment := models.Payment{
		UserID:        user.ID,
		CourseID:      &courseID,
		Amount:        course.Price,
		PaymentMethod: "upi",
		TransactionID: "order_course_1",
		Status:        models.PaymentPending,
	}
	require.NoError(t, db.Create(&payment).Error)

	body := verifyBody("order_course_1", "pay_abc", signPayment("order_course_1", "pay_abc"))

	status, data := doRequest(t, app, http.MethodPost, "/payment/verify", token, body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.PaymentCompleted, data["status"])

	var enrollCount int64
	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&enrollCount)
	assert.EqualValues(t, 1, enrollCount)

	var reloadedCourse models.Course
	require.NoError(t, db.First(&reloadedCourse, course.ID).Error)
	assert.Equal(t, 1, reloadedCourse.StudentsCount)

	// A duplicate gateway callback completes again without a second
	// enrollment or counter bump
	status, _ = doRequest(t, app, http.MethodPost, "/payment/verify", token, body)
	require.Equal(t, http.StatusOK, status)

	db.Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&enrollCount)
	assert.EqualValues(t, 1, enrollCount)
	require.NoError(t, db.First(&reloadedCourse, course.ID).Error)
	assert.Equal(t, 1, reloadedCourse.StudentsCount)
}

func TestVerifyPaymentConfirmsEventRegistration(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "buyer@test.com", "+911111111111")

	event := models.Event{Title: "Trading Workshop", EventType: models.EventWorkshop, Capacity: 50}
	require.NoError(t, db.Create(&event).Error)

	eventID := event.ID
	payment := models.Payment{
		UserID:        user.ID,
		EventID:       &eventID,
		Amount:        250,
		PaymentMethod: "card",
		TransactionID: "order_event_1",
		Status:        models.PaymentPending,
	}
	require.NoError(t, db.Create(&payment).Error)

	body := verifyBody("order_event_1", "pay_def", signPayment("order_event_1", "pay_def"))
	status, _ := doRequest(t, app, http.MethodPost, "/payment/verify", token, body)
	require.Equal(t, http.StatusOK, status)

	var registration models.EventRegistration
	require.NoError(t, db.Where("user_id = ? AND event_id = ?", user.ID, event.ID).First(&registration).Error)
	assert.Equal(t, models.RegistrationConfirmed, registration.Status)

	var reloaded models.Event
	require.NoError(t, db.First(&reloaded, event.ID).Error)
	assert.Equal(t, 1, reloaded.Registered)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "buyer@test.com", "+911111111111")

	course := models.Course{Title: "Pro Course", Category: "Finance", Level: "Advanced", Price: 999}
	require.NoError(t, db.Create(&course).Error)

	courseID := course.ID
	payment := models.Payment{
		UserID:        user.ID,
		CourseID:      &courseID,
		Amount:        course.Price,
		PaymentMethod: "upi",
		TransactionID: "order_bad_sig",
		Status:        models.PaymentPending,
	}
	require.NoError(t, db.Create(&payment).Error)

	status, _ := doRequest(t, app, http.MethodPost, "/payment/verify", token,
		verifyBody("order_bad_sig", "pay_abc", "forged-signature"))
	assert.Equal(t, http.StatusBadRequest, status)

	var reloaded models.Payment
	require.NoError(t, db.First(&reloaded, payment.ID).Error)
	assert.Equal(t, models.PaymentFailed, reloaded.Status)

	var enrollCount int64
	db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&enrollCount)
	assert.EqualValues(t, 0, enrollCount)
}

func TestVerifyPaymentRejectsOtherUsersOrder(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	owner, _ := createTestUser(t, db, "owner@test.com", "+911111111111")
	_, intruderToken := createTestUser(t, db, "intruder@test.com", "+912222222222")

	course := models.Course{Title: "Pro Course", Category: "Finance", Level: "Advanced", Price: 999}
	require.NoError(t, db.Create(&course).Error)

	courseID := course.ID
	payment := models.Payment{
		UserID:        owner.ID,
		CourseID:      &courseID,
		Amount:        course.Price,
		PaymentMethod: "upi",
		TransactionID: "order_owned",
		Status:        models.PaymentPending,
	}
	require.NoError(t, db.Create(&payment).Error)

	status, _ := doRequest(t, app, http.MethodPost, "/payment/verify", intruderToken,
		verifyBody("order_owned", "pay_abc", signPayment("order_owned", "pay_abc")))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "buyer@test.com", "+911111111111")

	status, _ := doRequest(t, app, http.MethodPost, "/payment/verify", token,
		verifyBody("order_missing", "pay_abc", signPayment("order_missing", "pay_abc")))
	assert.Equal(t, http.StatusNotFound, status)
}
