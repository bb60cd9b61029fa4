// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// CreatePayment inserts a new payment and sets its ID.
func (r *Repository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO payments (booking_id, user_id, amount_cents, method, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		payment.BookingID, payment.UserID, payment.AmountCents,
		payment.Method, payment.Status, payment.CreatedAt)
	if err != nil {
		return err
	}
	payment.ID, err = res.LastInsertId()
	return err
}

// CompletedPaymentTotal returns the sum of completed payment amounts
// for a booking.
func (r *Repository) CompletedPaymentTotal(ctx context.Context, bookingID int64) (int64, error) {
	var total int64
	err := sqlx.GetContext(ctx, r.q, &total, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE booking_id = ? AND status = ?`,
		bookingID, models.PaymentCompleted)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListPaymentsByBooking returns all payments for a booking, oldest first.
func (r *Repository) ListPaymentsByBooking(ctx context.Context, bookingID int64) ([]models.Payment, error) {
	var payments []models.Payment
	err := sqlx.SelectContext(ctx, r.q, &payments, `
		SELECT * FROM payments WHERE booking_id = ? ORDER BY created_at, id`, bookingID)
	if err != nil {
		return nil, err
	}
	return payments, nil
}
