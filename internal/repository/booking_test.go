// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"codeberg.org/oliverandrich/tourbooking/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookedSeats(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	tour := testutil.NewTestTour(t, repo, 20)

	pending := testutil.NewTestBooking(t, repo, user.ID, tour.ID, 3, 50_00)
	paid := testutil.NewTestBooking(t, repo, user.ID, tour.ID, 2, 50_00)
	require.NoError(t, repo.UpdateBookingStatus(ctx, paid.ID, models.PaymentStatusPaid))
	cancelled := testutil.NewTestBooking(t, repo, user.ID, tour.ID, 4, 50_00)
	require.NoError(t, repo.UpdateBookingStatus(ctx, cancelled.ID, models.PaymentStatusCancelled))
	failed := testutil.NewTestBooking(t, repo, user.ID, tour.ID, 6, 50_00)
	require.NoError(t, repo.UpdateBookingStatus(ctx, failed.ID, models.PaymentStatusFailed))

	// only pending and paid bookings hold seats
	booked, err := repo.BookedSeats(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.TotalQty+paid.TotalQty, booked)
}

func TestBookedSeats_NoBookings(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	tour := testutil.NewTestTour(t, repo, 20)

	booked, err := repo.BookedSeats(context.Background(), tour.ID)
	require.NoError(t, err)
	assert.Zero(t, booked)
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.UpdateBookingStatus(context.Background(), 9999, models.PaymentStatusPaid)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompletedPaymentTotal(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	tour := testutil.NewTestTour(t, repo, 20)
	booking := testutil.NewTestBooking(t, repo, user.ID, tour.ID, 2, 50_00)

	for _, p := range []*models.Payment{
		{BookingID: booking.ID, UserID: user.ID, AmountCents: 30_00, Method: "card", Status: models.PaymentCompleted, CreatedAt: time.Now().UTC()},
		{BookingID: booking.ID, UserID: user.ID, AmountCents: 20_00, Method: "card", Status: models.PaymentCompleted, CreatedAt: time.Now().UTC()},
		{BookingID: booking.ID, UserID: user.ID, AmountCents: 99_00, Method: "card", Status: models.PaymentFailed, CreatedAt: time.Now().UTC()},
	} {
		require.NoError(t, repo.CreatePayment(ctx, p))
	}

	total, err := repo.CompletedPaymentTotal(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50_00), total)

	payments, err := repo.ListPaymentsByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 3)
}

func TestListBookings(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewTestUser(t, repo, "alice@example.com")
	bob := testutil.NewTestUser(t, repo, "bob@example.com")
	tour := testutil.NewTestTour(t, repo, 20)

	testutil.NewTestBooking(t, repo, alice.ID, tour.ID, 1, 50_00)
	testutil.NewTestBooking(t, repo, alice.ID, tour.ID, 2, 50_00)
	testutil.NewTestBooking(t, repo, bob.ID, tour.ID, 1, 50_00)

	byUser, err := repo.ListBookingsByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byTour, err := repo.ListBookingsByTour(ctx, tour.ID)
	require.NoError(t, err)
	assert.Len(t, byTour, 3)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	tour := testutil.NewTestTour(t, repo, 20)

	boom := errors.New("boom")
	err := repo.InTx(ctx, func(tx *repository.Repository) error {
		b := &models.Booking{
			UserID:          user.ID,
			TourID:          tour.ID,
			AdultQty:        1,
			AdultPriceCents: 50_00,
			TotalQty:        1,
			TotalCents:      50_00,
			PaymentStatus:   models.PaymentStatusPending,
			ContactName:     "Alice",
			ContactEmail:    "alice@example.com",
			CreatedAt:       time.Now().UTC(),
		}
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	bookings, err := repo.ListBookingsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestFavorites(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	tour := testutil.NewTestTour(t, repo, 20)

	require.NoError(t, repo.AddFavorite(ctx, user.ID, tour.ID))
	require.NoError(t, repo.AddFavorite(ctx, user.ID, tour.ID))

	favorites, err := repo.ListFavoriteTours(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	require.NoError(t, repo.RemoveFavorite(ctx, user.ID, tour.ID))
	assert.ErrorIs(t, repo.RemoveFavorite(ctx, user.ID, tour.ID), repository.ErrNotFound)
}

func TestAverageRating(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	tour := testutil.NewTestTour(t, repo, 20)

	avg, err := repo.AverageRating(ctx, tour.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		UserID: user.ID, TourID: tour.ID, Rating: 3, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.CreateReview(ctx, &models.Review{
		UserID: user.ID, TourID: tour.ID, Rating: 4, CreatedAt: time.Now().UTC(),
	}))

	avg, err = repo.AverageRating(ctx, tour.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, avg, 0.001)
}
