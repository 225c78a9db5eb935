package courseControllers

import (
	"errors"
	"log"
	"lot/database"
	"lot/middleware"
	"lot/models"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recomputeEnrollmentProgress refreshes the enrollment's aggregate from the
// lecture progress rows in a single conditional UPDATE. The correlated
// subqueries are evaluated under the enrollment row lock, so two concurrent
// lecture upserts on the same enrollment cannot interleave the count with
// the write. completed_at is stamped only when it is still NULL and the
// course just became complete; it is never cleared or re-stamped.
func recomputeEnrollmentProgress(tx *gorm.DB, enrollmentID, courseID uint) error {
	const totalLectures = `(SELECT COUNT(*) FROM course_lectures
		WHERE course_lectures.course_id = ? AND course_lectures.deleted_at IS NULL)`
	const completedLectures = `(SELECT COUNT(*) FROM lecture_progress
		WHERE lecture_progress.enrollment_id = enrollments.id
		AND lecture_progress.completed
		AND lecture_progress.deleted_at IS NULL)`

	query := `UPDATE enrollments SET
		progress = CASE WHEN ` + totalLectures + ` = 0 THEN 0
			ELSE ` + completedLectures + ` * 100.0 / ` + totalLectures + ` END,
		completed = (` + totalLectures + ` > 0 AND ` + completedLectures + ` = ` + totalLectures + `),
		completed_at = CASE WHEN completed_at IS NULL
				AND ` + totalLectures + ` > 0
				AND ` + completedLectures + ` = ` + totalLectures + `
			THEN CURRENT_TIMESTAMP ELSE completed_at END,
		updated_at = CURRENT_TIMESTAMP
		WHERE enrollments.id = ?`

	args := []interface{}{
		courseID, courseID, // progress
		courseID, courseID, // completed
		courseID, courseID, // completed_at
		enrollmentID,
	}
	return tx.Exec(query, args...).Error
}

// UpdateLectureProgress upserts the caller's watch state for one lecture and
// recomputes the enrollment aggregate in the same transaction
func UpdateLectureProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(uint)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		WatchedDuration *int  `json:"watched_duration" validate:"required,min=0"`
		Completed       *bool `json:"completed" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var lecture models.CourseLecture
	if err := db.Where("id = ?", lectureID).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, lecture.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var progress models.LectureProgress
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("enrollment_id = ? AND lecture_id = ?", enrollment.ID, lecture.ID).First(&progress).Error
		switch {
		case err == nil:
			progress.WatchedDuration = *reqData.WatchedDuration
			// completed_at is stamped on the first completion only and
			// survives a later "uncomplete" update
			if *reqData.Completed && progress.CompletedAt == nil {
				now := time.Now()
				progress.CompletedAt = &now
			}
			progress.Completed = *reqData.Completed
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = models.LectureProgress{
				EnrollmentID:    enrollment.ID,
				LectureID:       lecture.ID,
				WatchedDuration: *reqData.WatchedDuration,
				Completed:       *reqData.Completed,
			}
			if *reqData.Completed {
				now := time.Now()
				progress.CompletedAt = &now
			}
			if err := tx.Create(&progress).Error; err != nil {
				// a concurrent request created the row first; update it instead
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					if err := tx.Where("enrollment_id = ? AND lecture_id = ?", enrollment.ID, lecture.ID).First(&progress).Error; err != nil {
						return err
					}
					progress.WatchedDuration = *reqData.WatchedDuration
					if *reqData.Completed && progress.CompletedAt == nil {
						now := time.Now()
						progress.CompletedAt = &now
					}
					progress.Completed = *reqData.Completed
					if err := tx.Save(&progress).Error; err != nil {
						return err
					}
				} else {
					return err
				}
			}
		default:
			return err
		}

		return recomputeEnrollmentProgress(tx, enrollment.ID, lecture.CourseID)
	})
	if err != nil {
		log.Printf("Error updating lecture progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	// Reload the recomputed aggregate
	if err := db.Where("id = ?", enrollment.ID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"lecture_progress_id": progress.ID,
		"overall_progress":    math.Round(enrollment.Progress*100) / 100,
		"course_completed":    enrollment.Completed,
	})
}

// GetCourseProgress returns lecture-by-lecture progress for a course the
// caller is enrolled in. Lectures without a progress row render as not
// started.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	var lectures []models.CourseLecture
	if err := db.Where("course_id = ?", courseID).Order("order_index asc").Find(&lectures).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lectures!", nil)
	}

	var progressRows []models.LectureProgress
	if err := db.Where("enrollment_id = ?", enrollment.ID).Find(&progressRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	progressByLecture := make(map[uint]models.LectureProgress, len(progressRows))
	for _, p := range progressRows {
		progressByLecture[p.LectureID] = p
	}

	type LectureWithProgress struct {
		ID              uint       `json:"id"`
		Title           string     `json:"title"`
		Duration        int        `json:"duration"`
		Order           int        `json:"order"`
		Completed       bool       `json:"completed"`
		WatchedDuration int        `json:"watched_duration"`
		CompletedAt     *time.Time `json:"completed_at"`
	}

	lecturesData := make([]LectureWithProgress, len(lectures))
	completedCount := 0
	for i, lecture := range lectures {
		row := LectureWithProgress{
			ID:       lecture.ID,
			Title:    lecture.Title,
			Duration: lecture.Duration,
			Order:    lecture.OrderIndex,
		}
		if p, found := progressByLecture[lecture.ID]; found {
			row.Completed = p.Completed
			row.WatchedDuration = p.WatchedDuration
			row.CompletedAt = p.CompletedAt
		}
		if row.Completed {
			completedCount++
		}
		lecturesData[i] = row
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_id":          courseID,
		"lectures":           lecturesData,
		"total_lectures":     len(lecturesData),
		"completed_lectures": completedCount,
	})
}
