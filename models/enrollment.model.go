package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's access to one course with aggregate progress.
// At most one row exists per (user, course); the unique index is the
// authority under concurrent creation.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Progress    float64    `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
}

// LectureProgress is the per-lecture watch state within one enrollment.
// completed_at is stamped on the first transition to completed and never
// cleared, even if completed later toggles back to false.
type LectureProgress struct {
	gorm.Model
	EnrollmentID    uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_progress_enrollment_lecture"`
	LectureID       uint       `json:"lecture_id" gorm:"not null;uniqueIndex:idx_progress_enrollment_lecture"`
	WatchedDuration int        `json:"watched_duration" gorm:"default:0"` // in seconds
	Completed       bool       `json:"completed" gorm:"default:false"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func (LectureProgress) TableName() string { return "lecture_progress" }
