// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// GetTour retrieves a tour by its ID.
func (r *Repository) GetTour(ctx context.Context, id int64) (*models.Tour, error) {
	var tour models.Tour
	err := sqlx.GetContext(ctx, r.q, &tour, `SELECT * FROM tours WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &tour, nil
}

// CreateTour inserts a new tour and sets its ID.
func (r *Repository) CreateTour(ctx context.Context, tour *models.Tour) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO tours (name, description, detail, seats, start_date, end_date,
			duration, price_cents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tour.Name, tour.Description, tour.Detail, tour.Seats,
		tour.StartDate.UTC(), tour.EndDate.UTC(), tour.Duration,
		tour.PriceCents, tour.CreatedAt)
	if err != nil {
		return err
	}
	tour.ID, err = res.LastInsertId()
	return err
}

// UpdateTour updates an existing tour.
func (r *Repository) UpdateTour(ctx context.Context, tour *models.Tour) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE tours
		SET name = ?, description = ?, detail = ?, seats = ?, start_date = ?,
			end_date = ?, duration = ?, price_cents = ?
		WHERE id = ?`,
		tour.Name, tour.Description, tour.Detail, tour.Seats,
		tour.StartDate.UTC(), tour.EndDate.UTC(), tour.Duration,
		tour.PriceCents, tour.ID)
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

// DeleteTour deletes a tour by its ID.
func (r *Repository) DeleteTour(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, id)
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

// ListTours returns all tours ordered by start date.
func (r *Repository) ListTours(ctx context.Context) ([]models.Tour, error) {
	var tours []models.Tour
	err := sqlx.SelectContext(ctx, r.q, &tours, `SELECT * FROM tours ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	return tours, nil
}

// BookedSeats returns the number of seats currently reserved for a
// tour. Cancelled and failed bookings release their seats and are not
// counted.
func (r *Repository) BookedSeats(ctx context.Context, tourID int64) (int, error) {
	var booked int
	err := sqlx.GetContext(ctx, r.q, &booked, `
		SELECT COALESCE(SUM(total_qty), 0)
		FROM bookings
		WHERE tour_id = ? AND payment_status IN (?, ?)`,
		tourID, models.PaymentStatusPending, models.PaymentStatusPaid)
	if err != nil {
		return 0, err
	}
	return booked, nil
}
