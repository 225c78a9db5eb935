package courseControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lot/config"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"lot/utils"
	courseValidator "lot/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		SaltRound:          4,
		CertificateBaseURL: "https://certificates.test",
	}

	dsn := fmt.Sprintf("file:coursetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

	app.Post("/course/lecture/:lectureId/progress", middleware.JWTMiddleware, courseValidator.LectureID(), courseValidator.UpdateProgress(), UpdateLectureProgress)
	app.Get("/course/:id/progress", middleware.JWTMiddleware, courseValidator.CourseID(), GetCourseProgress)
	app.Post("/course/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), EnrollInCourse(wa))
	app.Post("/course/:id/certificate", middleware.JWTMiddleware, courseValidator.CourseID(), GenerateCertificate(wa))
	app.Get("/certificate/verify/:number", VerifyCertificate)

	return app
}

func createTestUser(t *testing.T, db *gorm.DB, email, phone string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
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

func createCourseWithLectures(t *testing.T, db *gorm.DB, price float64, lectureCount int) (models.Course, []models.CourseLecture) {
	t.Helper()

	course := models.Course{
		Title:       "Options Basics",
		Description: "Intro course",
		Category:    "Finance",
		Level:       "Beginner",
		Price:       price,
	}
	require.NoError(t, db.Create(&course).Error)

	lectures := make([]models.CourseLecture, lectureCount)
	for i := 0; i < lectureCount; i++ {
		lectures[i] = models.CourseLecture{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Lecture %d", i+1),
			Duration:   10,
			OrderIndex: i + 1,
		}
		require.NoError(t, db.Create(&lectures[i]).Error)
	}
	return course, lectures
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) models.Enrollment {
	t.Helper()

	var enrollment *models.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		enrollment, _, txErr = CreateEnrollment(tx, userID, courseID)
		return txErr
	})
	require.NoError(t, err)
	return *enrollment
}

type apiResponse struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
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

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}
