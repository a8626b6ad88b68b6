package models

import "time"

const (
	WorkerStatusActive    = "ACTIVE"
	WorkerStatusPending   = "PENDING"
	WorkerStatusRequested = "REQUESTED"
	WorkerStatusBlocked   = "BLOCKED"
	WorkerStatusInactive  = "INACTIVE"
)

type Worker struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Phone     string    `gorm:"type:varchar(30);uniqueIndex" json:"phone"`
	Password  string    `gorm:"type:varchar(255)" json:"-"`
	BirthDate string    `gorm:"type:varchar(10)" json:"birth_date"`
	Role      string    `gorm:"type:varchar(100)" json:"role"`
	TeamID    uint      `json:"team_id"`
	Status    string    `gorm:"type:varchar(20);default:ACTIVE" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Team Team `gorm:"foreignKey:TeamID" json:"team"`
}

func (Worker) TableName() string {
	return "workers"
}

type Team struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	SiteID uint   `json:"site_id"`
	Name   string `gorm:"type:varchar(255)" json:"name"`
}

func (Team) TableName() string {
	return "teams"
}
