package reportcontroller

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"WORKSITE/models"
	"WORKSITE/store"
	"WORKSITE/workday"

	"github.com/gin-gonic/gin"
)

// GetMonthlyAttendance returns the authenticated worker's records for one
// calendar month plus day/hour totals. Open records count toward days but
// contribute no hours.
func GetMonthlyAttendance(c *gin.Context) {
	userData, exists := c.Get("currentWorker")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}
	currentWorker := userData.(models.Worker)

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month. Use 1-12."})
		return
	}

	records, err := store.New(models.DB).MonthRecords(currentWorker.ID, year, time.Month(month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance records"})
		return
	}

	today := now.Format(workday.DateFormat)
	var totalHours float64
	days := make([]models.DailyAttendance, 0, len(records))

	for _, rec := range records {
		day := models.DailyAttendance{
			WorkDate:     rec.WorkDate,
			CheckInTime:  rec.CheckInAt.Format("15:04"),
			Status:       "working",
			IsAutoClosed: rec.IsAutoClosed,
			HasIncident:  rec.HasIncident,
			IsToday:      rec.WorkDate == today,
		}
		if parsed, err := time.ParseInLocation(workday.DateFormat, rec.WorkDate, time.Local); err == nil {
			day.DayOfWeek = parsed.Format("Mon")
		} else {
			log.Printf("Unparseable work_date %q on record %d", rec.WorkDate, rec.ID)
		}
		if rec.CheckOutAt != nil {
			out := rec.CheckOutAt.Format("15:04")
			hours := workday.RoundHours(rec.CheckOutAt.Sub(rec.CheckInAt))
			day.CheckOutTime = &out
			day.WorkHours = &hours
			day.Status = "done"
			totalHours += hours
		}
		days = append(days, day)
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": models.MonthlySummary{
			Year:      year,
			Month:     month,
			TotalDays: len(records),
			// Per-record hours are rounded before summation; re-round once
			// to absorb float accumulation noise.
			TotalHours: workday.Round1(totalHours),
		},
		"records": days,
	})
}
