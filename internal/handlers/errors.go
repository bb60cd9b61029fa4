// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/tourbooking/internal/services/auth"
	"codeberg.org/oliverandrich/tourbooking/internal/services/booking"
	"codeberg.org/oliverandrich/tourbooking/internal/services/tours"
	"github.com/labstack/echo/v4"
)

// serviceError maps service sentinel errors onto HTTP responses.
// Unknown errors are logged and answered with a generic 500 so no
// internals leak to the client.
func serviceError(c echo.Context, err error) error {
	switch {
	// validation
	case errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrEmptyToken),
		errors.Is(err, booking.ErrInvalidQuantity),
		errors.Is(err, booking.ErrInvalidPrice),
		errors.Is(err, booking.ErrInvalidAmount),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, tours.ErrInvalidTour),
		errors.Is(err, tours.ErrInvalidRating):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	// conflict
	case errors.Is(err, auth.ErrEmailTaken),
		errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, booking.ErrOverPayment),
		errors.Is(err, booking.ErrBookingNotPayable),
		errors.Is(err, booking.ErrAlreadyCancelled):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	// not found
	case errors.Is(err, auth.ErrAccountNotFound),
		errors.Is(err, booking.ErrTourNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, tours.ErrTourNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	// unauthorized; deliberately uninformative about the sub-condition
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrEmailNotConfirmed),
		errors.Is(err, auth.ErrAccountDisabled),
		errors.Is(err, auth.ErrInvalidOrExpiredToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	default:
		slog.Error("internal_error", "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
