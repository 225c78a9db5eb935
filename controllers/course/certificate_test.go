package courseControllers

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
	"time"

	"lot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var certificateNumberRe = regexp.MustCompile(`^CERT-\d{8}-[A-Z0-9]{6}$`)

func TestGenerateCertificateRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 0, 1)

	status, resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Enrollment not found!", resp.Message)
}

func TestGenerateCertificateRequiresCompletion(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 0, 2)
	enroll(t, db, user.ID, course.ID)

	status, resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Course must be completed to generate certificate!", resp.Message)
}

func TestGenerateCertificateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 0, 1)
	enrollment := enroll(t, db, user.ID, course.ID)

	now := time.Now()
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Updates(map[string]interface{}{"progress": 100, "completed": true, "completed_at": now}).Error)

	status, first := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	number, ok := first.Data["certificate_number"].(string)
	require.True(t, ok)
	assert.Regexp(t, certificateNumberRe, number)
	assert.Equal(t, true, first.Data["badge_awarded"])
	assert.Contains(t, first.Data["certificate_url"], number)

	status, second := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Certificate already exists", second.Message)
	assert.Equal(t, number, second.Data["certificate_number"])

	var certCount int64
	db.Model(&models.Certificate{}).Where("user_id = ?", user.ID).Count(&certCount)
	assert.EqualValues(t, 1, certCount)
}

func TestBadgeAwardedOnlyOnFirstCertificate(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")

	for i := 0; i < 2; i++ {
		course, _ := createCourseWithLectures(t, db, 0, 1)
		enrollment := enroll(t, db, user.ID, course.ID)
		now := time.Now()
		require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
			Updates(map[string]interface{}{"progress": 100, "completed": true, "completed_at": now}).Error)

		status, resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, i == 0, resp.Data["badge_awarded"])
	}

	var badgeCount int64
	db.Model(&models.UserBadge{}).Where("user_id = ?", user.ID).Count(&badgeCount)
	assert.EqualValues(t, 1, badgeCount)

	var badge models.UserBadge
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&badge).Error)
	assert.Equal(t, "First Course Complete", badge.BadgeName)
}

func TestVerifyCertificatePublicLookup(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 0, 1)
	enrollment := enroll(t, db, user.ID, course.ID)
	now := time.Now()
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Updates(map[string]interface{}{"progress": 100, "completed": true, "completed_at": now}).Error)

	status, issued := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	number := issued.Data["certificate_number"].(string)

	// No auth header: the verification endpoint is public
	status, verified := doRequest(t, app, http.MethodGet, "/certificate/verify/"+number, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, verified.Data["valid"])
	assert.Equal(t, user.Name, verified.Data["user_name"])
	assert.Equal(t, course.Title, verified.Data["course_title"])

	status, missing := doRequest(t, app, http.MethodGet, "/certificate/verify/CERT-20260101-XXXXXX", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Certificate not found!", missing.Message)
}
