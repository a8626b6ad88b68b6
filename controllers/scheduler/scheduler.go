package scheduler

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

// SweepHandler force-closes everything still open for the current work-day.
// Called by an external cron behind middlewares.CronAuth; optionally scoped
// with ?site_id=N. Safe to call twice: the second run closes nothing.
func SweepHandler(c *gin.Context) {
	var siteID *uint
	if raw := c.Query("site_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid site_id"})
			return
		}
		v := uint(id)
		siteID = &v
	}

	now := time.Now()
	closed, err := store.New(models.DB).Sweep(siteID, now)
	if err != nil {
		log.Printf("Sweep failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	// A scoped sweep reports the bucket the site actually uses.
	startHour := models.DefaultWorkDayStartHour
	if siteID != nil {
		var site models.Site
		if err := models.DB.First(&site, *siteID).Error; err == nil {
			startHour = site.WorkDayStartHour
		}
	}
	workDate := workday.ResolveDate(now, startHour)
	log.Printf("Sweep %s: closed %d open records", workDate, closed)

	c.JSON(http.StatusOK, gin.H{
		"work_date":    workDate,
		"closed_count": closed,
	})
}

// RunAutoCheckout is the in-process flavor of the sweep, driven by the
// ticker in main. Failures are logged and retried on the next tick.
func RunAutoCheckout() {
	now := time.Now()
	closed, err := store.New(models.DB).Sweep(nil, now)
	if err != nil {
		log.Printf("Auto checkout failed: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Auto checkout: closed %d open records", closed)
	}
}
