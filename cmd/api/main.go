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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eventify/eventify-api/internal/config"
	"github.com/eventify/eventify-api/internal/handler"
	"github.com/eventify/eventify-api/internal/notify"
	"github.com/eventify/eventify-api/internal/repository"
	"github.com/eventify/eventify-api/internal/service"
	"github.com/eventify/eventify-api/internal/validator"
	"github.com/eventify/eventify-api/pkg/database"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Create context for startup
	ctx := context.Background()

	// Initialize database pool with retry
	pool, err := database.NewPool(ctx, cfg.DB.DSN(), cfg.DB.ConnectRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "Eventify Booking API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Guest-notification publisher; an empty URL disables publishing.
	var notifier service.Notifier
	if cfg.AMQP.URL != "" {
		notifier = notify.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	}

	// Repositories
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	waitlistRepo := repository.NewWaitlistRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Explicit admin bootstrap, replacing lazy first-login creation.
	if err := userRepo.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("failed to provision admin account")
	}

	// Services
	eventService := service.NewEventService(eventRepo)
	bookingService := service.NewBookingService(pool, bookingRepo, eventRepo, notifier)
	promoService := service.NewPromoService(promoRepo)
	waitlistService := service.NewWaitlistService(waitlistRepo, eventRepo)
	dashboardService := service.NewDashboardService(bookingRepo, eventRepo, userRepo)

	// Handlers
	eventHandler := handler.NewEventHandler(eventService, validate)
	bookingHandler := handler.NewBookingHandler(bookingService, validate)
	promoHandler := handler.NewPromoHandler(promoService, validate)
	waitlistHandler := handler.NewWaitlistHandler(waitlistService, validate)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	healthHandler := handler.NewHealthHandler(pool)

	app.Get("/health", healthHandler.Check)

	// Event routes
	app.Get("/api/events", eventHandler.ListEvents)
	app.Post("/api/events", eventHandler.CreateEvent)
	app.Get("/api/events/:id", eventHandler.GetEvent)
	app.Put("/api/events/:id", eventHandler.UpdateEvent)
	app.Delete("/api/events/:id", eventHandler.DeleteEvent)
	app.Get("/api/events/:id/availability", eventHandler.GetAvailability)
	app.Patch("/api/events/:id/booked", eventHandler.AdjustBooked)

	// Booking routes
	app.Post("/api/bookings", bookingHandler.CreateBooking)
	app.Get("/api/bookings", bookingHandler.ListBookings)
	app.Get("/api/bookings/:id", bookingHandler.GetBooking)
	app.Put("/api/bookings/:id/status", bookingHandler.UpdateBookingStatus)

	// Waitlist routes
	app.Post("/api/waitlist", waitlistHandler.JoinWaitlist)
	app.Get("/api/waitlist", waitlistHandler.ListWaitlist)

	// Promo routes
	app.Get("/api/promos", promoHandler.ListPromos)
	app.Post("/api/promos", promoHandler.CreatePromo)
	app.Put("/api/promos/:id", promoHandler.UpdatePromo)
	app.Delete("/api/promos/:id", promoHandler.DeletePromo)
	app.Post("/api/promos/validate", promoHandler.ValidatePromo)
	app.Post("/api/promos/redeem", promoHandler.RedeemPromo)

	// Dashboard
	app.Get("/api/admin/dashboard", dashboardHandler.GetStats)

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
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

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
