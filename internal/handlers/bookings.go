// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/tourbooking/internal/middleware"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/services/booking"
	"github.com/labstack/echo/v4"
)

// BookingHandlers contains handlers for the booking engine.
type BookingHandlers struct {
	bookings *booking.Service
}

// NewBookings creates a new BookingHandlers instance.
func NewBookings(bookings *booking.Service) *BookingHandlers {
	return &BookingHandlers{bookings: bookings}
}

// CreateBookingRequest is the request body for creating a booking.
type CreateBookingRequest struct {
	TourID              int64  `json:"tour_id"`
	AdultQty            int    `json:"adult_qty"`
	ChildQty            int    `json:"child_qty"`
	InfantQty           int    `json:"infant_qty"`
	AdultPriceCents     int64  `json:"adult_price_cents"`
	ChildPriceCents     int64  `json:"child_price_cents"`
	InfantPriceCents    int64  `json:"infant_price_cents"`
	ContactName         string `json:"contact_name"`
	ContactEmail        string `json:"contact_email"`
	ContactPhone        string `json:"contact_phone"`
	SpecialRequirements string `json:"special_requirements"`
}

// Create creates a pending booking for the authenticated user.
func (h *BookingHandlers) Create(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	result, err := h.bookings.Create(c.Request().Context(), booking.CreateInput{
		UserID: userID,
		TourID: req.TourID,
		Quantities: booking.Quantities{
			Adult:  req.AdultQty,
			Child:  req.ChildQty,
			Infant: req.InfantQty,
		},
		UnitPrices: booking.UnitPrices{
			AdultCents:  req.AdultPriceCents,
			ChildCents:  req.ChildPriceCents,
			InfantCents: req.InfantPriceCents,
		},
		Contact: booking.Contact{
			Name:  req.ContactName,
			Email: req.ContactEmail,
			Phone: req.ContactPhone,
		},
		SpecialRequirements: req.SpecialRequirements,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}

// Get returns a booking. Users can only see their own bookings;
// administrators can see all of them.
func (h *BookingHandlers) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	result, err := h.loadOwned(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// ListMine returns the authenticated user's bookings.
func (h *BookingHandlers) ListMine(c echo.Context) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

// RecordPaymentRequest is the request body for recording a payment.
type RecordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

// RecordPayment applies a payment against a booking.
func (h *BookingHandlers) RecordPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.loadOwned(c, id); err != nil {
		return err
	}

	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	payment, err := h.bookings.RecordPayment(c.Request().Context(), id, req.AmountCents, req.Method)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// Cancel cancels a booking.
func (h *BookingHandlers) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.loadOwned(c, id); err != nil {
		return err
	}

	if err := h.bookings.Cancel(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

// Payments lists the payments recorded against a booking.
func (h *BookingHandlers) Payments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.loadOwned(c, id); err != nil {
		return err
	}

	payments, err := h.bookings.Payments(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// loadOwned loads a booking and enforces that it belongs to the
// authenticated user, unless the session has the administrator role.
func (h *BookingHandlers) loadOwned(c echo.Context, id int64) (*models.Booking, error) {
	userID, err := sessionUserID(c)
	if err != nil {
		return nil, err
	}
	claims := middleware.SessionFromContext(c.Request().Context())

	result, err := h.bookings.Get(c.Request().Context(), id)
	if err != nil {
		return nil, serviceError(c, err)
	}
	if result.UserID != userID && claims.Role != models.RoleAdmin {
		// hide existence of other users' bookings
		return nil, echo.NewHTTPError(http.StatusNotFound, booking.ErrBookingNotFound.Error())
	}
	return result, nil
}
