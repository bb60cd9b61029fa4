// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// AddFavorite bookmarks a tour for a user. Adding an existing
// favorite is a no-op.
func (r *Repository) AddFavorite(ctx context.Context, userID, tourID int64) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO favorites (user_id, tour_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, tour_id) DO NOTHING`,
		userID, tourID, time.Now().UTC())
	return err
}

// RemoveFavorite removes a bookmark. Removing a missing favorite
// returns ErrNotFound.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, tourID int64) error {
	res, err := r.q.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = ? AND tour_id = ?`, userID, tourID)
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

// ListFavoriteTours returns the tours a user has bookmarked.
func (r *Repository) ListFavoriteTours(ctx context.Context, userID int64) ([]models.Tour, error) {
	var tours []models.Tour
	err := sqlx.SelectContext(ctx, r.q, &tours, `
		SELECT t.*
		FROM tours t
		JOIN favorites f ON f.tour_id = t.id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return tours, nil
}
