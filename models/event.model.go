package models

import (
	"time"

	"gorm.io/gorm"
)

// Event types
const (
	EventWorkshop   = "workshop"
	EventLive       = "live_event"
	EventOnlineQuiz = "online_quiz"
)

type Event struct {
	gorm.Model
	Title        string    `json:"title" gorm:"index"`
	Description  string    `json:"description" gorm:"type:text"`
	EventType    string    `json:"event_type" gorm:"index"` // workshop, live_event, online_quiz
	InstructorID uint      `json:"instructor_id" gorm:"index"`
	Date         time.Time `json:"date" gorm:"index"`
	Time         string    `json:"time"`
	Duration     int       `json:"duration"` // in minutes
	Location     string    `json:"location"`
	Image        string    `json:"image"`
	Capacity     int       `json:"capacity"`
	Registered   int       `json:"registered" gorm:"default:0"`
	EventURL     string    `json:"event_url"` // for online events
}

type EventAgendaItem struct {
	gorm.Model
	EventID     uint   `json:"event_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Speaker     string `json:"speaker"`
	OrderIndex  int    `json:"order" gorm:"default:0"`
}

// EventRegistration statuses
const (
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

type EventRegistration struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_registration_user_event"`
	EventID      uint   `json:"event_id" gorm:"not null;uniqueIndex:idx_registration_user_event"`
	Status       string `json:"status" gorm:"default:'confirmed'"` // confirmed, cancelled
	ReminderSent bool   `json:"-" gorm:"default:false"`
}
