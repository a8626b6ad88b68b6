package checkoutcontroller

import (
	"errors"
	"net/http"
	"time"

	"WORKSITE/config"
	"WORKSITE/models"
	"WORKSITE/store"
	"WORKSITE/token"

	"github.com/gin-gonic/gin"
)

// CheckOutRequest identifies the worker either directly (admin closing a
// record) or through a scanned QR payload.
type CheckOutRequest struct {
	SiteID    uint           `json:"site_id" binding:"required"`
	WorkerID  string         `json:"worker_id"`
	QRPayload *token.Payload `json:"qr_payload"`
}

func CheckOutHandler(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	workerID := req.WorkerID
	if req.QRPayload != nil {
		verifier := token.NewVerifier(config.QRSecret())
		if err := verifier.Verify(*req.QRPayload, now); err != nil {
			if errors.Is(err, token.ErrBadSignature) {
				c.JSON(http.StatusForbidden, gin.H{"error": "QR code could not be verified."})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "QR code expired."})
			return
		}
		workerID = req.QRPayload.WorkerID
	}
	if workerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "worker_id or qr_payload required"})
		return
	}

	var site models.Site
	if err := models.DB.First(&site, req.SiteID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Site not found"})
		return
	}

	rec, hours, err := store.New(models.DB).CheckOut(site, workerID, now)
	switch {
	case errors.Is(err, store.ErrNoOpenRecord):
		c.JSON(http.StatusNotFound, gin.H{"error": "No check-in record for today."})
		return
	case errors.Is(err, store.ErrAlreadyClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Already checked out."})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Check-out failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": rec.WorkerName + " checked out.",
		"data": gin.H{
			"worker_name":  rec.WorkerName,
			"work_date":    rec.WorkDate,
			"check_in_at":  rec.CheckInAt,
			"check_out_at": rec.CheckOutAt,
			"work_hours":   hours,
		},
	})
}
