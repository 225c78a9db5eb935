package courseControllers

import (
	"fmt"
	"net/http"
	"testing"

	"lot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressBody(watched int, completed bool) map[string]interface{} {
	return map[string]interface{}{
		"watched_duration": watched,
		"completed":        completed,
	}
}

func TestUpdateLectureProgressRecomputesAggregate(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, lectures := createCourseWithLectures(t, db, 0, 3)
	enroll(t, db, user.ID, course.ID)

	expected := []float64{33.33, 66.67, 100}
	for i, lecture := range lectures {
		status, resp := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/course/lecture/%d/progress", lecture.ID), token, progressBody(600, true))
		require.Equal(t, http.StatusOK, status)
		assert.InDelta(t, expected[i], resp.Data["overall_progress"], 0.01)
	}

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)
	assert.True(t, enrollment.Completed)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestUpdateLectureProgressIsUpsert(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, lectures := createCourseWithLectures(t, db, 0, 3)
	enrollment := enroll(t, db, user.ID, course.ID)

	path := fmt.Sprintf("/course/lecture/%d/progress", lectures[0].ID)
	for i := 0; i < 3; i++ {
		status, _ := doRequest(t, app, http.MethodPost, path, token, progressBody(100*(i+1), true))
		require.Equal(t, http.StatusOK, status)
	}

	var rows int64
	db.Model(&models.LectureProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&rows)
	assert.EqualValues(t, 1, rows)

	var progress models.LectureProgress
	require.NoError(t, db.Where("enrollment_id = ? AND lecture_id = ?", enrollment.ID, lectures[0].ID).First(&progress).Error)
	assert.Equal(t, 300, progress.WatchedDuration)

	var reloaded models.Enrollment
	require.NoError(t, db.First(&reloaded, enrollment.ID).Error)
	assert.InDelta(t, 33.33, reloaded.Progress, 0.01)
}

func TestCompletionTimestampsAreSticky(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, lectures := createCourseWithLectures(t, db, 0, 2)
	enrollment := enroll(t, db, user.ID, course.ID)

	for _, lecture := range lectures {
		status, _ := doRequest(t, app, http.MethodPost,
			fmt.Sprintf("/course/lecture/%d/progress", lecture.ID), token, progressBody(600, true))
		require.Equal(t, http.StatusOK, status)
	}

	var completed models.Enrollment
	require.NoError(t, db.First(&completed, enrollment.ID).Error)
	require.True(t, completed.Completed)
	require.NotNil(t, completed.CompletedAt)
	firstCompletedAt := *completed.CompletedAt

	var progress models.LectureProgress
	require.NoError(t, db.Where("enrollment_id = ? AND lecture_id = ?", enrollment.ID, lectures[0].ID).First(&progress).Error)
	require.NotNil(t, progress.CompletedAt)
	lectureCompletedAt := *progress.CompletedAt

	// Un-complete one lecture: the live flags drop, the timestamps stay
	status, resp := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/lecture/%d/progress", lectures[0].ID), token, progressBody(300, false))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, resp.Data["course_completed"])

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.False(t, after.Completed)
	require.NotNil(t, after.CompletedAt)
	assert.Equal(t, firstCompletedAt.Unix(), after.CompletedAt.Unix())

	require.NoError(t, db.Where("enrollment_id = ? AND lecture_id = ?", enrollment.ID, lectures[0].ID).First(&progress).Error)
	assert.False(t, progress.Completed)
	require.NotNil(t, progress.CompletedAt)
	assert.Equal(t, lectureCompletedAt.Unix(), progress.CompletedAt.Unix())
}

func TestUpdateLectureProgressRejectsUnknownLecture(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "student@test.com", "+911111111111")

	status, resp := doRequest(t, app, http.MethodPost, "/course/lecture/9999/progress", token, progressBody(60, true))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Lecture not found!", resp.Message)
}

func TestUpdateLectureProgressRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "student@test.com", "+911111111111")
	_, lectures := createCourseWithLectures(t, db, 0, 1)

	status, resp := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/lecture/%d/progress", lectures[0].ID), token, progressBody(60, true))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Not enrolled in this course!", resp.Message)
}

func TestGetCourseProgressIncludesUnstartedLectures(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, lectures := createCourseWithLectures(t, db, 0, 3)
	enroll(t, db, user.ID, course.ID)

	status, _ := doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/course/lecture/%d/progress", lectures[1].ID), token, progressBody(600, true))
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	assert.EqualValues(t, 3, resp.Data["total_lectures"])
	assert.EqualValues(t, 1, resp.Data["completed_lectures"])

	rows, ok := resp.Data["lectures"].([]interface{})
	require.True(t, ok)
	require.Len(t, rows, 3)

	first := rows[0].(map[string]interface{})
	assert.Equal(t, false, first["completed"])
	assert.Nil(t, first["completed_at"])
}

func TestFreeEnrollmentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	user, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 0, 1)

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already enrolled in this course!", resp.Message)

	var count int64
	db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var reloaded models.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, 1, reloaded.StudentsCount)
}

func TestPaidCourseRequiresCheckout(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp()

	_, token := createTestUser(t, db, "student@test.com", "+911111111111")
	course, _ := createCourseWithLectures(t, db, 499, 1)

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, http.StatusPaymentRequired, status)
}
