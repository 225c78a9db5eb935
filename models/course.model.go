package models

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title         string  `json:"title" gorm:"index"`
	Description   string  `json:"description" gorm:"type:text"`
	Category      string  `json:"category" gorm:"index"`
	Level         string  `json:"level"` // Beginner, Intermediate, Advanced
	Price         float64 `json:"price"`
	Duration      int     `json:"duration" gorm:"default:0"` // in weeks
	InstructorID  uint    `json:"instructor_id" gorm:"index"`
	Image         string  `json:"image"`
	Rating        float64 `json:"rating" gorm:"default:0"`
	ReviewsCount  int     `json:"reviews_count" gorm:"default:0"`
	StudentsCount int     `json:"students_count" gorm:"default:0"`
	IsDeleted     bool    `json:"-" gorm:"default:false"`
}

// CourseLecture is one ordered unit of course content
type CourseLecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration"` // in minutes
	OrderIndex  int    `json:"order" gorm:"default:0"`
}

type CourseFAQ struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Question   string `json:"question"`
	Answer     string `json:"answer" gorm:"type:text"`
	OrderIndex int    `json:"order" gorm:"default:0"`
}

type CourseReview struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	Rating   int    `json:"rating"` // 1-5
	Comment  string `json:"comment" gorm:"type:text"`
}

// Wishlist bookmarks a course for a user
type Wishlist struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_wishlist_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_wishlist_user_course"`
}

func (Wishlist) TableName() string { return "wishlist" }
