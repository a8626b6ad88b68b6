package models

import "time"

const (
	CheckoutPolicyAutoFixed = "AUTO_FIXED_DURATION"
	CheckoutPolicyManual    = "MANUAL"

	// DefaultWorkDayStartHour makes a work-day run 04:00-03:59, so a
	// check-in at 01:00 still counts against the previous date.
	DefaultWorkDayStartHour = 4

	DefaultSeniorAgeThreshold = 65
)

type Site struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"type:varchar(255)" json:"name"`
	Address            string    `gorm:"type:varchar(255)" json:"address"`
	CheckoutPolicy     string    `gorm:"type:varchar(30);default:MANUAL" json:"checkout_policy"`
	AutoCheckoutHours  int       `gorm:"default:8" json:"auto_checkout_hours"`
	WorkDayStartHour   int       `gorm:"default:4" json:"work_day_start_hour"`
	SeniorAgeThreshold int       `gorm:"default:65" json:"senior_age_threshold"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Site) TableName() string {
	return "sites"
}
