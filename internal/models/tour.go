// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Tour is a bookable trip with a fixed seat capacity. Bookings,
// favorites and reviews reference it by foreign key only; there are
// no live back-references.
type Tour struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Detail      string    `db:"detail" json:"detail"`
	Seats       int       `db:"seats" json:"seats"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Duration    int       `db:"duration" json:"duration"` // days
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Favorite marks a tour as bookmarked by a user.
type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	TourID    int64     `db:"tour_id" json:"tour_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Review is a rating and comment left by a user for a tour.
type Review struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	TourID    int64     `db:"tour_id" json:"tour_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
