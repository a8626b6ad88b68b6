package profilecontroller

import (
	"net/http"
	"time"

	"WORKSITE/config"
	"WORKSITE/models"
	"WORKSITE/token"

	"github.com/gin-gonic/gin"
)

func GetWorkerProfile(c *gin.Context) {
	userData, exists := c.Get("currentWorker")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}
	currentWorker := userData.(models.Worker)

	c.JSON(http.StatusOK, gin.H{"profile": gin.H{
		"id":         currentWorker.ID,
		"name":       currentWorker.Name,
		"phone":      currentWorker.Phone,
		"birth_date": currentWorker.BirthDate,
		"role":       currentWorker.Role,
		"team_name":  currentWorker.Team.Name,
		"status":     currentWorker.Status,
	}})
}

// GetQRPayload issues a fresh short-lived identity payload for the logged-in
// worker's device to render as a QR code.
func GetQRPayload(c *gin.Context) {
	userData, exists := c.Get("currentWorker")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
		return
	}
	currentWorker := userData.(models.Worker)

	payload := token.Generate(currentWorker.ID, config.QRSecret(), token.DefaultTTL, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"qr_payload":         payload,
		"expires_in_seconds": int(token.DefaultTTL.Seconds()),
	})
}
