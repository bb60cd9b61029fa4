// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the services into an echo HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/config"
	"codeberg.org/oliverandrich/tourbooking/internal/database"
	"codeberg.org/oliverandrich/tourbooking/internal/handlers"
	"codeberg.org/oliverandrich/tourbooking/internal/i18n"
	appmiddleware "codeberg.org/oliverandrich/tourbooking/internal/middleware"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"codeberg.org/oliverandrich/tourbooking/internal/services/auth"
	"codeberg.org/oliverandrich/tourbooking/internal/services/booking"
	"codeberg.org/oliverandrich/tourbooking/internal/services/email"
	"codeberg.org/oliverandrich/tourbooking/internal/services/tours"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Notification gateway
	mailer, err := email.NewService(&cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to create mail service: %w", err)
	}

	// Repository and services
	repo := repository.New(db)
	authService := auth.NewService(repo, mailer, &cfg.Auth, cfg.Server.BaseURL)
	bookingService := booking.NewService(repo, mailer)
	tourService := tours.NewService(repo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmiddleware.RequestLogger())
	e.Use(appmiddleware.Locale())

	setupRoutes(e, authService, bookingService, tourService)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, authService *auth.Service, bookingService *booking.Service, tourService *tours.Service) {
	authHandlers := handlers.NewAuth(authService)
	bookingHandlers := handlers.NewBookings(bookingService)
	tourHandlers := handlers.NewTours(tourService)

	requireAuth := appmiddleware.RequireAuth(authService)
	requireAdmin := appmiddleware.RequireAdmin()

	e.GET("/health", handlers.Health)

	// account security
	e.POST("/auth/register", authHandlers.Register)
	e.GET("/auth/verify-email", authHandlers.VerifyEmail)
	e.POST("/auth/login", authHandlers.Login)
	e.POST("/auth/password/forgot", authHandlers.ForgotPassword)
	e.POST("/auth/password/reset", authHandlers.ResetPassword)

	// tour catalog
	e.GET("/tours", tourHandlers.List)
	e.GET("/tours/:id", tourHandlers.Get)
	e.GET("/tours/:id/reviews", tourHandlers.Reviews)
	e.POST("/tours", tourHandlers.Create, requireAuth, requireAdmin)
	e.PUT("/tours/:id", tourHandlers.Update, requireAuth, requireAdmin)
	e.DELETE("/tours/:id", tourHandlers.Delete, requireAuth, requireAdmin)
	e.POST("/tours/:id/favorite", tourHandlers.AddFavorite, requireAuth)
	e.DELETE("/tours/:id/favorite", tourHandlers.RemoveFavorite, requireAuth)
	e.GET("/me/favorites", tourHandlers.ListFavorites, requireAuth)
	e.POST("/tours/:id/reviews", tourHandlers.AddReview, requireAuth)

	// booking engine
	e.POST("/bookings", bookingHandlers.Create, requireAuth)
	e.GET("/bookings", bookingHandlers.ListMine, requireAuth)
	e.GET("/bookings/:id", bookingHandlers.Get, requireAuth)
	e.POST("/bookings/:id/payments", bookingHandlers.RecordPayment, requireAuth)
	e.GET("/bookings/:id/payments", bookingHandlers.Payments, requireAuth)
	e.POST("/bookings/:id/cancel", bookingHandlers.Cancel, requireAuth)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
