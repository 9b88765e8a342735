package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"resource-booking-backend/config"
	"resource-booking-backend/controllers"
	"resource-booking-backend/realtime"
	"resource-booking-backend/routes"
	"resource-booking-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied")

	// Event fan-out, shared by every write path
	hub := realtime.NewHub()

	// Initialize services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db)
	resourceService := services.NewResourceService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(userService, sessionService)
	resourceController := controllers.NewResourceController(resourceService, hub)
	availabilityController := controllers.NewAvailabilityController(availabilityService, hub)
	bookingController := controllers.NewBookingController(bookingService, hub)
	eventController := controllers.NewEventController(hub)

	// Build router
	router := routes.SetupRouter(
		authController,
		resourceController,
		availabilityController,
		bookingController,
		eventController,
		sessionService,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// WriteTimeout stays unset: /api/events holds its response open for
		// the lifetime of the subscription.
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
