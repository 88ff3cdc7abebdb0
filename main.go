package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/funkypants5/wedding-backend/config"
	"github.com/funkypants5/wedding-backend/controllers"
	"github.com/funkypants5/wedding-backend/middleware"
	"github.com/funkypants5/wedding-backend/services"
	"github.com/funkypants5/wedding-backend/storage"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	logger := config.NewLogger()
	slog.SetDefault(logger)

	// Connect to MongoDB and bootstrap indexes
	config.ConnectDB()

	// Wire services to the store
	eventStore := services.NewMongoEventStore(config.DB.Collection("events"))
	eventService := services.NewEventService(eventStore, logger)
	documentStore, err := storage.NewDocumentStore(config.DB)
	if err != nil {
		log.Fatalf("document store init error: %v", err)
	}
	controllers.Init(eventService, documentStore)
	controllers.RegisterValidators()

	// Initialize Gin router
	router := gin.Default()

	// API routes group
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.GET("/me", middleware.Auth(), controllers.Me)
		}

		// Join lives under /invites so the code never collides with an
		// event id segment.
		api.POST("/invites/:code/join", middleware.Auth(), controllers.JoinByInviteCode)

		events := api.Group("/events", middleware.Auth())
		{
			events.GET("", controllers.ListEvents)
			events.POST("", controllers.CreateEvent)
			events.GET("/:id", controllers.GetEvent)
			events.PATCH("/:id", controllers.UpdateEvent)
			events.DELETE("/:id", controllers.DeleteEvent)
			events.PATCH("/:id/settings", controllers.UpdateSettings)

			events.GET("/:id/members", controllers.ListMembers)
			events.PATCH("/:id/members/:userId", controllers.UpdateMember)
			events.DELETE("/:id/members/:userId", controllers.RemoveMember)
			events.POST("/:id/leave", controllers.LeaveEvent)

			events.GET("/:id/guests", controllers.ListGuests)
			events.POST("/:id/guests", controllers.AddGuest)
			events.PATCH("/:id/guests/:index", controllers.UpdateGuest)
			events.DELETE("/:id/guests/:index", controllers.DeleteGuest)

			events.GET("/:id/expenses", controllers.ListExpenses)
			events.POST("/:id/expenses", controllers.AddExpense)
			events.PATCH("/:id/expenses/:index", controllers.UpdateExpense)
			events.DELETE("/:id/expenses/:index", controllers.DeleteExpense)

			events.GET("/:id/vendors", controllers.ListVendors)
			events.POST("/:id/vendors", controllers.AddVendor)
			events.GET("/:id/vendors/:vendorId", controllers.GetVendor)
			events.PATCH("/:id/vendors/:vendorId", controllers.UpdateVendor)
			events.DELETE("/:id/vendors/:vendorId", controllers.DeleteVendor)
			events.POST("/:id/vendors/:vendorId/documents", controllers.UploadVendorDocument)
			events.GET("/:id/vendors/:vendorId/documents/:filename", controllers.DownloadVendorDocument)

			events.GET("/:id/seating", controllers.GetSeating)
			events.PUT("/:id/seating", controllers.ReplaceSeating)
		}
	}

	// Get port from environment (default to 8080)
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine for graceful shutdown
	go func() {
		logger.Info("server started", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt (Ctrl+C)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}

	if err := config.Client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting MongoDB", "err", err)
	}

	logger.Info("server exited")
}
