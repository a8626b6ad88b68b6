package checkincontroller

import (
	"errors"
	"net/http"
	"time"

	"WORKSITE/config"
	"WORKSITE/helper"
	"WORKSITE/models"
	"WORKSITE/store"
	"WORKSITE/token"

	"github.com/gin-gonic/gin"
)

type CheckInRequest struct {
	SiteID    uint          `json:"site_id" binding:"required"`
	QRPayload token.Payload `json:"qr_payload" binding:"required"`
}

var statusMessages = map[string]string{
	models.WorkerStatusPending:   "Consent required. Please finish signup in the app.",
	models.WorkerStatusRequested: "Signup awaiting approval. Please wait for your administrator.",
	models.WorkerStatusBlocked:   "Access blocked. Contact your administrator.",
	models.WorkerStatusInactive:  "Inactive account. Contact your administrator.",
}

// CheckInHandler turns a scanned QR payload into an open attendance record
// for the current work-day.
func CheckInHandler(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	verifier := token.NewVerifier(config.QRSecret())
	if err := verifier.Verify(req.QRPayload, now); err != nil {
		switch {
		case errors.Is(err, token.ErrExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "QR code expired. Refresh and try again."})
		case errors.Is(err, token.ErrBadSignature):
			c.JSON(http.StatusForbidden, gin.H{"error": "QR code could not be verified. Generate a new one in the app."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	var worker models.Worker
	if err := models.DB.Preload("Team").First(&worker, "id = ?", req.QRPayload.WorkerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
		return
	}
	if worker.Status != models.WorkerStatusActive {
		msg, ok := statusMessages[worker.Status]
		if !ok {
			msg = "Worker cannot check in right now."
		}
		c.JSON(http.StatusForbidden, gin.H{"error": msg})
		return
	}

	var site models.Site
	if err := models.DB.First(&site, req.SiteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	attendance := store.New(models.DB)
	rec, err := attendance.CheckIn(site, worker, now)
	if errors.Is(err, store.ErrAlreadyCheckedIn) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked in. Check out before trying again."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check-in failed"})
		return
	}

	data := gin.H{
		"worker_name":    rec.WorkerName,
		"team_name":      worker.Team.Name,
		"work_date":      rec.WorkDate,
		"check_in_at":    rec.CheckInAt,
		"check_out_at":   rec.CheckOutAt,
		"is_auto_closed": rec.IsAutoClosed,
		"is_senior":      rec.IsSenior,
	}
	if predicted := predictedCheckout(attendance, rec); predicted != "" {
		data["predicted_check_out"] = predicted
	}

	c.JSON(http.StatusOK, gin.H{
		"message": rec.WorkerName + " checked in.",
		"data":    data,
	})
}

// predictedCheckout estimates today's checkout from the worker's recent
// closed days. Best effort; an empty string means no estimate.
func predictedCheckout(s *store.AttendanceStore, rec *models.AttendanceRecord) string {
	if rec.CheckOutAt != nil {
		return ""
	}
	recent, err := s.RecentClosed(rec.WorkerID, 10)
	if err != nil {
		return ""
	}
	history := helper.TrainingHistory(recent)
	if len(history) < 3 {
		return ""
	}
	predicted, err := helper.PredictCheckoutTime(history, rec.CheckInAt.Format("15:04"))
	if err != nil {
		return ""
	}
	return predicted
}
