// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/middleware"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/services/tours"
	"github.com/labstack/echo/v4"
)

// TourHandlers contains handlers for the tour catalog.
type TourHandlers struct {
	tours *tours.Service
}

// NewTours creates a new TourHandlers instance.
func NewTours(toursService *tours.Service) *TourHandlers {
	return &TourHandlers{tours: toursService}
}

// TourRequest is the request body for creating or updating a tour.
type TourRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Detail      string    `json:"detail"`
	Seats       int       `json:"seats"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	PriceCents  int64     `json:"price_cents"`
}

func (r TourRequest) params() tours.TourParams {
	return tours.TourParams{
		Name:        r.Name,
		Description: r.Description,
		Detail:      r.Detail,
		Seats:       r.Seats,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		PriceCents:  r.PriceCents,
	}
}

// List returns all tours.
func (h *TourHandlers) List(c echo.Context) error {
	result, err := h.tours.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// TourResponse is a tour together with its derived availability and
// rating figures.
type TourResponse struct {
	models.Tour
	RemainingSeats int     `json:"remaining_seats"`
	AverageRating  float64 `json:"average_rating"`
}

// Get returns a single tour with remaining seats and average rating.
func (h *TourHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tour, err := h.tours.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	remaining, err := h.tours.RemainingSeats(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	_, avg, err := h.tours.Reviews(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, TourResponse{
		Tour:           *tour,
		RemainingSeats: remaining,
		AverageRating:  avg,
	})
}

// Create adds a new tour (administrators only).
func (h *TourHandlers) Create(c echo.Context) error {
	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	tour, err := h.tours.Create(c.Request().Context(), req.params())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, tour)
}

// Update replaces a tour's fields (administrators only).
func (h *TourHandlers) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	tour, err := h.tours.Update(c.Request().Context(), id, req.params())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tour)
}

// Delete removes a tour (administrators only).
func (h *TourHandlers) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tours.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFavorite bookmarks a tour for the authenticated user.
func (h *TourHandlers) AddFavorite(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	if err := h.tours.AddFavorite(c.Request().Context(), userID, id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "favorited"})
}

// RemoveFavorite removes a bookmark.
func (h *TourHandlers) RemoveFavorite(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	if err := h.tours.RemoveFavorite(c.Request().Context(), userID, id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFavorites returns the authenticated user's bookmarked tours.
func (h *TourHandlers) ListFavorites(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	result, err := h.tours.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ReviewRequest is the request body for adding a review.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview records a review for a tour.
func (h *TourHandlers) AddReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	review, err := h.tours.AddReview(c.Request().Context(), userID, id, req.Rating, req.Comment)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

// ReviewsResponse carries a tour's reviews and their average rating.
type ReviewsResponse struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
}

// Reviews lists a tour's reviews.
func (h *TourHandlers) Reviews(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	reviews, avg, err := h.tours.Reviews(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ReviewsResponse{Reviews: reviews, AverageRating: avg})
}

func sessionUserID(c echo.Context) (int64, error) {
	claims := middleware.SessionFromContext(c.Request().Context())
	if claims == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	userID, err := claims.UserID()
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
	}
	return userID, nil
}
