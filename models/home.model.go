package models

import (
	"time"

	"gorm.io/gorm"
)

// HeroSlide is one slide of the homepage hero carousel
type HeroSlide struct {
	gorm.Model
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Description   string     `json:"description" gorm:"type:text"`
	Image         string     `json:"image"`
	CTAText       string     `json:"cta_text"`
	CTALink       string     `json:"cta_link"`
	CountdownDate *time.Time `json:"countdown_date"`
	OrderIndex    int        `json:"order" gorm:"default:0"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
}

// PlatformStat is a headline figure shown on the homepage
// (e.g. "50+ Courses", "10K Learners")
type PlatformStat struct {
	gorm.Model
	StatName  string `json:"name"`
	StatValue string `json:"value"`
	StatLabel string `json:"label"`
	Icon      string `json:"icon"`
}
