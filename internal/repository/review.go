// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// CreateReview inserts a new review and sets its ID.
func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO reviews (user_id, tour_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		review.UserID, review.TourID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return err
	}
	review.ID, err = res.LastInsertId()
	return err
}

// ListReviewsByTour returns all reviews for a tour, newest first.
func (r *Repository) ListReviewsByTour(ctx context.Context, tourID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := sqlx.SelectContext(ctx, r.q, &reviews, `
		SELECT * FROM reviews WHERE tour_id = ? ORDER BY created_at DESC, id DESC`, tourID)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// AverageRating returns the mean rating for a tour, or 0 when the
// tour has no reviews.
func (r *Repository) AverageRating(ctx context.Context, tourID int64) (float64, error) {
	var avg float64
	err := sqlx.GetContext(ctx, r.q, &avg, `
		SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE tour_id = ?`, tourID)
	if err != nil {
		return 0, err
	}
	return avg, nil
}
