package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

type User struct {
	gorm.Model
	Name         string `json:"name" gorm:"index"`
	Email        string `json:"email" gorm:"unique;not null"`
	Phone        string `json:"phone" gorm:"unique"`
	Password     string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"default:'student'"` // admin, instructor, student
	ProfileImage string `json:"profile_image"`
	Bio          string `json:"bio" gorm:"type:text"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

// UserBadge is a one-time achievement record, e.g. the badge awarded on a
// user's first certificate.
type UserBadge struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"index;not null"`
	BadgeName        string `json:"badge_name"`
	BadgeDescription string `json:"badge_description"`
	BadgeIcon        string `json:"badge_icon"`
}
