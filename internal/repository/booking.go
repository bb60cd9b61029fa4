// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// GetBooking retrieves a booking by its ID.
func (r *Repository) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := sqlx.GetContext(ctx, r.q, &booking, `SELECT * FROM bookings WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &booking, nil
}

// CreateBooking inserts a new booking and sets its ID.
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO bookings (user_id, tour_id, adult_qty, child_qty, infant_qty,
			adult_price_cents, child_price_cents, infant_price_cents,
			total_qty, total_cents, payment_status, payment_ref,
			contact_name, contact_email, contact_phone, special_requirements, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.UserID, booking.TourID, booking.AdultQty, booking.ChildQty,
		booking.InfantQty, booking.AdultPriceCents, booking.ChildPriceCents,
		booking.InfantPriceCents, booking.TotalQty, booking.TotalCents,
		booking.PaymentStatus, booking.PaymentRef, booking.ContactName,
		booking.ContactEmail, booking.ContactPhone, booking.SpecialRequirements,
		booking.CreatedAt)
	if err != nil {
		return err
	}
	booking.ID, err = res.LastInsertId()
	return err
}

// UpdateBookingStatus sets the payment status of a booking.
func (r *Repository) UpdateBookingStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	res, err := r.q.ExecContext(ctx, `UPDATE bookings SET payment_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBookingPaymentRef stores an external payment reference on a booking.
func (r *Repository) SetBookingPaymentRef(ctx context.Context, id int64, ref string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE bookings SET payment_ref = ? WHERE id = ?`, ref, id)
	return err
}

// ListBookingsByUser returns a user's bookings, newest first.
func (r *Repository) ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := sqlx.SelectContext(ctx, r.q, &bookings, `
		SELECT * FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListBookingsByTour returns all bookings for a tour, newest first.
func (r *Repository) ListBookingsByTour(ctx context.Context, tourID int64) ([]models.Booking, error) {
	var bookings []models.Booking
	err := sqlx.SelectContext(ctx, r.q, &bookings, `
		SELECT * FROM bookings WHERE tour_id = ? ORDER BY created_at DESC, id DESC`, tourID)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
