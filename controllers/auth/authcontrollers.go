package authcontroller

import (
	"errors"
	"net/http"
	"time"

	"WORKSITE/config"
	"WORKSITE/models"
	"WORKSITE/workday"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	BirthDate string `json:"birth_date" binding:"required"`
	Role      string `json:"role"`
	TeamID    uint   `json:"team_id"`
}

func LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var worker models.Worker
	if err := models.DB.Where("phone = ?", req.Phone).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Phone or password incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Phone or password incorrect"})
		return
	}

	expTime := time.Now().Add(24 * time.Hour)
	claims := &config.JWTClaims{
		WorkerID: worker.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "worksite-attendance",
			ExpiresAt: jwt.NewNumericDate(expTime),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.JWT_KEY)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": signed})
}

func RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	birth, err := workday.ParseBirthDate(req.BirthDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid birth date. Use YYYY-MM-DD."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	worker := models.Worker{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Phone:     req.Phone,
		Password:  string(hash),
		BirthDate: birth.Format(workday.DateFormat),
		Role:      req.Role,
		TeamID:    req.TeamID,
		Status:    models.WorkerStatusActive,
	}

	if err := models.DB.Create(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registered", "worker_id": worker.ID})
}
