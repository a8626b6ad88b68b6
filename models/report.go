package models

type MonthlySummary struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalDays  int     `json:"total_days"`
	TotalHours float64 `json:"total_hours"`
}

type DailyAttendance struct {
	WorkDate     string   `json:"work_date"`
	DayOfWeek    string   `json:"day_of_week"`
	CheckInTime  string   `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	WorkHours    *float64 `json:"work_hours"`
	Status       string   `json:"status"`
	IsAutoClosed bool     `json:"is_auto_closed"`
	HasIncident  bool     `json:"has_incident"`
	IsToday      bool     `json:"is_today"`
}
