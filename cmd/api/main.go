package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kvreport/internal/cache"
	"kvreport/internal/config"
	"kvreport/internal/handler"
	"kvreport/internal/kiotviet"
	"kvreport/internal/middleware"
	"kvreport/internal/report"
	"kvreport/internal/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	client := kiotviet.NewClient(kiotviet.Config{
		Retailer:     cfg.Retailer,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      cfg.BaseURL,
		AuthURL:      cfg.AuthURL,
	})

	reports := report.NewService(client)

	if cfg.CacheEnabled {
		rc := cache.NewRedis(cfg.RedisAddr, 0)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("Redis unavailable at %s, running without cache: %v", cfg.RedisAddr, err)
		} else {
			reports.SetCache(rc)
			log.Println("Invoice cache enabled")
		}
		cancel()
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Relay fetch progress to connected clients
	reports.SetProgress(func(runID string, period report.Period, page, fetched int) {
		wsHub.BroadcastProgress(websocket.ProgressEvent{
			RunID:   runID,
			Period:  period.Label(),
			Page:    page,
			Fetched: fetched,
		})
	})

	reportHandler := handler.NewReportHandler(reports)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "retailer": cfg.Retailer})
	})

	// WebSocket endpoint for fetch progress
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	reportHandler.RegisterRoutes(router.Group(""))

	log.Printf("Report server for retailer %q listening on :%s", cfg.Retailer, cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
