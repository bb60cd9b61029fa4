// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package tours implements the tour catalog: administration of tours
// plus favorites and reviews.
package tours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
)

var (
	ErrTourNotFound  = errors.New("tour not found")
	ErrInvalidTour   = errors.New("invalid tour data")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Service implements the tour catalog operations.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new tours service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// TourParams holds the writable fields of a tour.
type TourParams struct {
	Name        string
	Description string
	Detail      string
	Seats       int
	StartDate   time.Time
	EndDate     time.Time
	PriceCents  int64
}

func (p TourParams) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTour)
	}
	if p.Seats <= 0 {
		return fmt.Errorf("%w: seats must be positive", ErrInvalidTour)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidTour)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidTour)
	}
	return nil
}

// durationDays returns the tour length in whole days, minimum one.
func durationDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// Create adds a new tour to the catalog.
func (s *Service) Create(ctx context.Context, params TourParams) (*models.Tour, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tour := &models.Tour{
		Name:        params.Name,
		Description: params.Description,
		Detail:      params.Detail,
		Seats:       params.Seats,
		StartDate:   params.StartDate.UTC(),
		EndDate:     params.EndDate.UTC(),
		Duration:    durationDays(params.StartDate, params.EndDate),
		PriceCents:  params.PriceCents,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateTour(ctx, tour); err != nil {
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}
	return tour, nil
}

// Update replaces the writable fields of an existing tour.
func (s *Service) Update(ctx context.Context, id int64, params TourParams) (*models.Tour, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tour, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tour.Name = params.Name
	tour.Description = params.Description
	tour.Detail = params.Detail
	tour.Seats = params.Seats
	tour.StartDate = params.StartDate.UTC()
	tour.EndDate = params.EndDate.UTC()
	tour.Duration = durationDays(params.StartDate, params.EndDate)
	tour.PriceCents = params.PriceCents

	if err := s.repo.UpdateTour(ctx, tour); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}
	return tour, nil
}

// Delete removes a tour from the catalog.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteTour(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTourNotFound
		}
		return fmt.Errorf("failed to delete tour: %w", err)
	}
	return nil
}

// Get returns a tour by ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Tour, error) {
	tour, err := s.repo.GetTour(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return tour, nil
}

// List returns all tours ordered by start date.
func (s *Service) List(ctx context.Context) ([]models.Tour, error) {
	return s.repo.ListTours(ctx)
}

// RemainingSeats returns a tour's capacity minus its reserved seats.
// The value is advisory; booking creation re-checks capacity inside
// its own transaction.
func (s *Service) RemainingSeats(ctx context.Context, id int64) (int, error) {
	tour, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	booked, err := s.repo.BookedSeats(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count booked seats: %w", err)
	}
	return tour.Seats - booked, nil
}

// AddFavorite bookmarks a tour for a user.
func (s *Service) AddFavorite(ctx context.Context, userID, tourID int64) error {
	if _, err := s.Get(ctx, tourID); err != nil {
		return err
	}
	return s.repo.AddFavorite(ctx, userID, tourID)
}

// RemoveFavorite removes a bookmark.
func (s *Service) RemoveFavorite(ctx context.Context, userID, tourID int64) error {
	if err := s.repo.RemoveFavorite(ctx, userID, tourID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTourNotFound
		}
		return err
	}
	return nil
}

// ListFavorites returns the tours a user has bookmarked.
func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]models.Tour, error) {
	return s.repo.ListFavoriteTours(ctx, userID)
}

// AddReview records a rating and comment for a tour.
func (s *Service) AddReview(ctx context.Context, userID, tourID int64, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if _, err := s.Get(ctx, tourID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		TourID:    tourID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// Reviews returns a tour's reviews together with the average rating.
func (s *Service) Reviews(ctx context.Context, tourID int64) ([]models.Review, float64, error) {
	reviews, err := s.repo.ListReviewsByTour(ctx, tourID)
	if err != nil {
		return nil, 0, err
	}
	avg, err := s.repo.AverageRating(ctx, tourID)
	if err != nil {
		return nil, 0, err
	}
	return reviews, avg, nil
}
