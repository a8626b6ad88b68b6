package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"WORKSITE/config"
	authcontroller "WORKSITE/controllers/auth"
	checkincontroller "WORKSITE/controllers/checkin"
	checkoutcontroller "WORKSITE/controllers/checkout"
	profilecontroller "WORKSITE/controllers/profile"
	reportcontroller "WORKSITE/controllers/report"
	"WORKSITE/controllers/scheduler"
	sitecontroller "WORKSITE/controllers/site"
	"WORKSITE/middlewares"
	"WORKSITE/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	models.ConnectDatabase()

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Cron-Secret"},
		AllowCredentials: true,
	}))

	v1 := router.Group("/v1")
	{
		v1.POST("/login", authcontroller.LoginHandler)
		v1.POST("/register", authcontroller.RegisterHandler)

		cron := v1.Group("/cron")
		cron.Use(middlewares.CronAuth())
		{
			cron.POST("/sweep", scheduler.SweepHandler)
		}

		api := v1.Group("/api")
		api.Use(middlewares.AuthMiddleware())
		{
			api.POST("/checkin", checkincontroller.CheckInHandler)
			api.POST("/checkout", checkoutcontroller.CheckOutHandler)
			api.GET("/attendance/monthly", reportcontroller.GetMonthlyAttendance)
			api.GET("/profile", profilecontroller.GetWorkerProfile)
			api.GET("/qr", profilecontroller.GetQRPayload)
			api.GET("/sites", sitecontroller.GetAllSites)
			api.GET("/sites/:id", sitecontroller.GetSite)
		}
	}

	startSweepLoop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s\n", port)

	router.Run(":" + port)
}

// startSweepLoop runs the auto-checkout sweep on an interval when
// SWEEP_INTERVAL_MINUTES is set. An external cron hitting /v1/cron/sweep
// works too; running both is harmless because the sweep is idempotent.
func startSweepLoop() {
	raw := os.Getenv("SWEEP_INTERVAL_MINUTES")
	if raw == "" {
		return
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		log.Printf("Ignoring invalid SWEEP_INTERVAL_MINUTES %q", raw)
		return
	}

	go func() {
		ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			scheduler.RunAutoCheckout()
		}
	}()
}
