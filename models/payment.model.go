package models

import "gorm.io/gorm"

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment records one checkout attempt. Exactly one of CourseID/EventID is
// set. TransactionID holds the gateway order id and is the idempotency key
// for verification.
type Payment struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index;not null"`
	CourseID      *uint   `json:"course_id" gorm:"index"`
	EventID       *uint   `json:"event_id" gorm:"index"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"` // rupay, card, upi, ...
	TransactionID string  `json:"transaction_id" gorm:"unique;index"`
	Status        string  `json:"status" gorm:"default:'pending'"` // pending, completed, failed, refunded
}
