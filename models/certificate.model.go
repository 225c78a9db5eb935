package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued proof of course completion. Issuance is
// idempotent per (user, course); certificate numbers are random and the
// unique column constraint is what guarantees global uniqueness.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CertificateURL    string    `json:"certificate_url"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"` // CERT-YYYYMMDD-XXXXXX
	IssuedAt          time.Time `json:"issued_at"`
}
