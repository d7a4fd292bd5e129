package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/camille-osteopathe/booking-api/internal/captcha"
	"github.com/camille-osteopathe/booking-api/internal/config"
	"github.com/camille-osteopathe/booking-api/internal/email"
	"github.com/camille-osteopathe/booking-api/internal/handler"
	bookingHandler "github.com/camille-osteopathe/booking-api/internal/handler/booking"
	contactHandler "github.com/camille-osteopathe/booking-api/internal/handler/contact"
	"github.com/camille-osteopathe/booking-api/internal/middleware"
	"github.com/camille-osteopathe/booking-api/internal/ratelimit"
	"github.com/camille-osteopathe/booking-api/internal/repository/postgres"
	"github.com/camille-osteopathe/booking-api/internal/router"
	bookingService "github.com/camille-osteopathe/booking-api/internal/service/booking"
	contactService "github.com/camille-osteopathe/booking-api/internal/service/contact"
	"github.com/camille-osteopathe/booking-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logLevel(cfg.Server.Development),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Server.Development,
	})

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.MigrationsPath != "" {
		if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Initialize repositories
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Outbound email. The services know how to degrade when no provider is
	// configured, so an unconfigured sender is still constructed.
	var sender email.Sender
	switch cfg.Email.Provider {
	case "smtp":
		sender = email.NewSMTPSender(cfg.Email.SMTP)
	default:
		sender = email.NewResendSender(cfg.Email.ResendAPIKey)
	}

	var verifier captcha.Verifier
	if cfg.Captcha.Secret != "" {
		verifier = captcha.NewHCaptchaVerifier(cfg.Captcha.Secret, cfg.Captcha.Timeout)
	}

	limiter := ratelimit.NewNoopLimiter()
	if cfg.RateLimit.RedisURL != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RateLimit.RedisURL, ratelimit.Config{
			Burst:       cfg.RateLimit.Burst,
			BurstWindow: cfg.RateLimit.BurstWindow,
			Hourly:      cfg.RateLimit.Hourly,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}

	// Initialize services
	bookingSvc := bookingService.NewService(appointmentRepo, sender, cfg.Email, cfg.Site, appLogger)
	contactSvc := contactService.NewService(verifier, limiter, sender, cfg, appLogger)

	// Initialize handlers
	h := handler.NewHandler(db)
	bookingH := bookingHandler.NewHandler(bookingSvc, cfg.Email.ClientNotifications)
	contactH := contactHandler.NewHandler(contactSvc)

	// Setup router
	r := router.NewRouter(bookingH, contactH, h, router.Config{
		Development:   cfg.Server.Development,
		Timeout:       cfg.Server.Timeout,
		RPS:           cfg.Server.RPS,
		Burst:         cfg.Server.Burst,
		CORSConfig:    corsConfig(cfg),
		MetricsPrefix: "booking_api",
	})
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func logLevel(development bool) logger.Level {
	if development {
		return logger.DebugLevel
	}
	return logger.InfoLevel
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	if cfg.Site.BaseURL != "" {
		c.AllowOrigins = []string{cfg.Site.BaseURL}
	}
	return c
}
