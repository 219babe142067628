package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stylehub/booking-api/internal/config"
	"github.com/stylehub/booking-api/internal/handler"
	"github.com/stylehub/booking-api/internal/jobs"
	"github.com/stylehub/booking-api/internal/repository"
	"github.com/stylehub/booking-api/internal/service"
	"github.com/stylehub/booking-api/internal/validator"
	"github.com/stylehub/booking-api/pkg/database"
)

func main() {
	// Load .env if present (local development), then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Stylehub Booking API",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    1 * 1024 * 1024,   // 1MB body limit
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Initialize booking engine components (layered architecture)
	catalogRepo := repository.NewCatalogRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	discountRepo := repository.NewDiscountRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	catalogService := service.NewCatalogService(catalogRepo)
	availabilityService := service.NewAvailabilityService(slotRepo)
	discountService := service.NewDiscountService(discountRepo)
	bookingService := service.NewBookingService(pool, bookingRepo, slotRepo, catalogRepo, discountService, discountRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	discountHandler := handler.NewDiscountHandler(discountService)
	bookingHandler := handler.NewBookingHandler(bookingService, validate)

	// Health handler
	healthHandler := handler.NewHealthHandler(pool)
	app.Get("/health", healthHandler.Check)

	// Catalog routes
	app.Get("/api/stylists", catalogHandler.ListStylists)
	app.Get("/api/stylists/:id", catalogHandler.GetStylist)
	app.Get("/api/services/stylist/:stylistId", catalogHandler.ListServicesByStylist)
	app.Get("/api/services/:id", catalogHandler.GetService)

	// Availability routes
	app.Get("/api/timeslots/stylist/:stylistId", availabilityHandler.ListSlots)

	// Discount routes
	app.Get("/api/discount/:code", discountHandler.GetDiscount)

	// Booking routes
	app.Post("/api/bookings/quote", bookingHandler.Quote)
	app.Post("/api/bookings", bookingHandler.CreateBooking)
	app.Get("/api/bookings/user/:userId", bookingHandler.ListUserBookings)
	app.Get("/api/bookings/:id", bookingHandler.GetBooking)
	app.Patch("/api/bookings/:id/status", bookingHandler.UpdateStatus)
	app.Post("/api/bookings/:id/cancel", bookingHandler.CancelBooking)
	app.Get("/api/bookings/:id/refund", bookingHandler.RefundPreview)

	// Background jobs
	sweeper := jobs.NewDiscountExpirySweeper(pool)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.DiscountExpirySchedule, sweeper.Run); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Jobs.DiscountExpirySchedule).Msg("invalid discount expiry schedule")
	}
	scheduler.Start()

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Stop scheduling new jobs; in-flight sweeps finish on their own timeout
	scheduler.Stop()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// Close database pool AFTER server shutdown (even if shutdown timed out)
	log.Info().Msg("closing database connections...")
	pool.Close()
	log.Info().Msg("database connections closed")
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
