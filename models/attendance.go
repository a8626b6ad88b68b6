package models

import "time"

// AttendanceRecord is one worker's presence on one work-day at one site.
// Worker name, role and birth date are copied onto the row at check-in so
// later profile edits cannot rewrite history.
//
// OpenKey holds "workDate|siteID|workerID" from creation until a final
// manual checkout clears it; provisional auto-closes keep it. The unique
// index on it is what makes two concurrent check-ins for the same worker
// impossible: unique indexes ignore NULLs, so finally-closed rows never
// collide while at most one live row per (workDate, site, worker) can exist.
type AttendanceRecord struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	WorkDate     string     `gorm:"type:varchar(10);index:idx_work_day" json:"work_date"`
	SiteID       uint       `gorm:"index:idx_work_day" json:"site_id"`
	TeamID       uint       `json:"team_id"`
	WorkerID     string     `gorm:"type:varchar(36);index:idx_work_day" json:"worker_id"`
	WorkerName   string     `gorm:"type:varchar(255)" json:"worker_name"`
	RoleSnapshot string     `gorm:"type:varchar(100)" json:"role"`
	BirthDate    string     `gorm:"type:varchar(10)" json:"birth_date"`
	Age          int        `json:"age"`
	IsSenior     bool       `json:"is_senior"`
	CheckInAt    time.Time  `json:"check_in_at"`
	CheckOutAt   *time.Time `json:"check_out_at"`
	IsAutoClosed bool       `json:"is_auto_closed"`
	HasIncident  bool       `json:"has_incident"`
	OpenKey      *string    `gorm:"type:varchar(120);uniqueIndex" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

// Open reports whether the record still waits for a final checkout. An
// auto-closed record is not open but stays eligible for a manual overwrite.
func (a *AttendanceRecord) Open() bool {
	return a.CheckOutAt == nil
}
