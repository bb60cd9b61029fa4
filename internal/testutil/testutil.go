// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/database"
	"codeberg.org/oliverandrich/tourbooking/internal/i18n"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"codeberg.org/oliverandrich/tourbooking/internal/services/auth"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// TestPassword is the plaintext password used for fixture users.
const TestPassword = "swordfish-under-the-bridge"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	require.NoError(t, i18n.Init())
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a confirmed, active user with TestPassword.
func NewTestUser(t *testing.T, repo *repository.Repository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		PasswordHash:   auth.HashPassword(TestPassword),
		Name:           "Test User",
		Role:           models.RoleUser,
		EmailConfirmed: true,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// NewTestTour creates a tour with the given seat capacity.
func NewTestTour(t *testing.T, repo *repository.Repository, seats int) *models.Tour {
	t.Helper()
	start := time.Now().UTC().Add(30 * 24 * time.Hour)
	tour := &models.Tour{
		Name:        "Halong Bay Cruise",
		Description: "Three days on the water",
		Seats:       seats,
		StartDate:   start,
		EndDate:     start.Add(2 * 24 * time.Hour),
		Duration:    3,
		PriceCents:  150_00,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreateTour(context.Background(), tour))
	return tour
}

// NewTestBooking creates a pending booking holding qty adult seats at
// the given unit price.
func NewTestBooking(t *testing.T, repo *repository.Repository, userID, tourID int64, qty int, unitCents int64) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		UserID:          userID,
		TourID:          tourID,
		AdultQty:        qty,
		AdultPriceCents: unitCents,
		TotalQty:        qty,
		TotalCents:      int64(qty) * unitCents,
		PaymentStatus:   models.PaymentStatusPending,
		ContactName:     "Test User",
		ContactEmail:    "booking@example.com",
		ContactPhone:    "+49 151 00000000",
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, repo.CreateBooking(context.Background(), booking))
	return booking
}
