package checkincontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"WORKSITE/models"
	"WORKSITE/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Site{}, &models.Team{}, &models.Worker{}, &models.AttendanceRecord{}))
	models.DB = db

	require.NoError(t, db.Create(&models.Team{ID: 7, SiteID: 1, Name: "Rebar Crew"}).Error)
	require.NoError(t, db.Create(&models.Site{
		ID: 1, Name: "North Gate",
		CheckoutPolicy: models.CheckoutPolicyManual, WorkDayStartHour: 4, SeniorAgeThreshold: 65,
	}).Error)
	require.NoError(t, db.Create(&models.Worker{
		ID: "w1", Name: "Kim Minsu", Phone: "010-1234-5678",
		BirthDate: "1950-01-01", Role: "welder", TeamID: 7,
		Status: models.WorkerStatusActive,
	}).Error)

	router := gin.New()
	router.POST("/checkin", CheckInHandler)
	return router
}

func postCheckIn(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/checkin", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckInHandler(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)

	payload := token.Generate("w1", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			WorkerName   string `json:"worker_name"`
			TeamName     string `json:"team_name"`
			IsSenior     bool   `json:"is_senior"`
			IsAutoClosed bool   `json:"is_auto_closed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Kim Minsu", resp.Data.WorkerName)
	assert.Equal(t, "Rebar Crew", resp.Data.TeamName)
	assert.True(t, resp.Data.IsSenior)
	assert.False(t, resp.Data.IsAutoClosed)

	var rec models.AttendanceRecord
	require.NoError(t, models.DB.Where("worker_id = ?", "w1").First(&rec).Error)
	assert.Nil(t, rec.CheckOutAt)
	assert.Equal(t, "Kim Minsu", rec.WorkerName)
}

func TestCheckInHandlerDuplicate(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)

	payload := token.Generate("w1", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	require.Equal(t, http.StatusOK, w.Code)

	payload = token.Generate("w1", "", token.DefaultTTL, time.Now())
	w = postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckInHandlerExpiredToken(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)

	payload := token.Generate("w1", "", -time.Second, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestCheckInHandlerTamperedSignature(t *testing.T) {
	t.Setenv("QR_SECRET", "s3cret")
	router := setupTest(t)

	payload := token.Generate("w1", "s3cret", token.DefaultTTL, time.Now())
	payload.WorkerID = "someone-else"
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckInHandlerUnknownWorker(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)

	payload := token.Generate("ghost", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInHandlerUnknownSite(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)

	payload := token.Generate("w1", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 99, QRPayload: payload})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInHandlerBlockedWorker(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)
	require.NoError(t, models.DB.Model(&models.Worker{}).Where("id = ?", "w1").
		Update("status", models.WorkerStatusBlocked).Error)

	payload := token.Generate("w1", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 1, QRPayload: payload})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "blocked")
}

func TestCheckInHandlerAutoPolicySite(t *testing.T) {
	t.Setenv("QR_SECRET", "")
	router := setupTest(t)
	require.NoError(t, models.DB.Create(&models.Site{
		ID: 2, Name: "Tunnel B",
		CheckoutPolicy: models.CheckoutPolicyAutoFixed, AutoCheckoutHours: 8,
		WorkDayStartHour: 4, SeniorAgeThreshold: 65,
	}).Error)

	payload := token.Generate("w1", "", token.DefaultTTL, time.Now())
	w := postCheckIn(t, router, CheckInRequest{SiteID: 2, QRPayload: payload})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rec models.AttendanceRecord
	require.NoError(t, models.DB.Where("worker_id = ? AND site_id = ?", "w1", 2).First(&rec).Error)
	require.NotNil(t, rec.CheckOutAt)
	assert.True(t, rec.IsAutoClosed)
	assert.WithinDuration(t, rec.CheckInAt.Add(8*time.Hour), *rec.CheckOutAt, time.Second)
}
