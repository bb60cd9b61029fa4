// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package booking implements the booking engine: pricing, capacity
// checked booking creation, payment recording and cancellation.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/i18n"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
)

var (
	ErrInvalidQuantity   = errors.New("total quantity must be positive")
	ErrInvalidPrice      = errors.New("unit prices must not be negative")
	ErrInvalidAmount     = errors.New("payment amount must be positive")
	ErrTourNotFound      = errors.New("tour not found")
	ErrCapacityExceeded  = errors.New("tour capacity exceeded")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrOverPayment       = errors.New("payment exceeds booking total")
	ErrBookingNotPayable = errors.New("booking does not accept payments")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrInvalidTransition = errors.New("invalid payment status transition")
)

// Mailer is the notification gateway contract the engine needs.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service implements the booking engine operations.
type Service struct {
	repo   *repository.Repository
	mailer Mailer
}

// NewService creates a new booking service.
func NewService(repo *repository.Repository, mailer Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// Contact is the contact snapshot captured at booking time. It is
// independent of the account's current profile.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// CreateInput holds the parameters for creating a booking.
type CreateInput struct {
	UserID              int64
	TourID              int64
	Quantities          Quantities
	UnitPrices          UnitPrices
	Contact             Contact
	SpecialRequirements string
}

// Create prices the request and persists a pending booking. The
// remaining capacity is re-read inside the same transaction that
// inserts the booking, so two concurrent requests cannot jointly
// overbook a tour.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Booking, error) {
	quote, err := Price(input.Quantities, input.UnitPrices)
	if err != nil {
		return nil, err
	}
	if quote.TotalQty <= 0 {
		return nil, ErrInvalidQuantity
	}

	var specialRequirements *string
	if input.SpecialRequirements != "" {
		specialRequirements = &input.SpecialRequirements
	}

	booking := &models.Booking{
		UserID:              input.UserID,
		TourID:              input.TourID,
		AdultQty:            input.Quantities.Adult,
		ChildQty:            input.Quantities.Child,
		InfantQty:           input.Quantities.Infant,
		AdultPriceCents:     input.UnitPrices.AdultCents,
		ChildPriceCents:     input.UnitPrices.ChildCents,
		InfantPriceCents:    input.UnitPrices.InfantCents,
		TotalQty:            quote.TotalQty,
		TotalCents:          quote.TotalCents,
		PaymentStatus:       models.PaymentStatusPending,
		ContactName:         input.Contact.Name,
		ContactEmail:        input.Contact.Email,
		ContactPhone:        input.Contact.Phone,
		SpecialRequirements: specialRequirements,
		CreatedAt:           time.Now().UTC(),
	}

	var tour *models.Tour
	err = s.repo.InTx(ctx, func(tx *repository.Repository) error {
		tour, err = tx.GetTour(ctx, input.TourID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTourNotFound
			}
			return fmt.Errorf("failed to load tour: %w", err)
		}

		booked, err := tx.BookedSeats(ctx, input.TourID)
		if err != nil {
			return fmt.Errorf("failed to count booked seats: %w", err)
		}
		if quote.TotalQty > tour.Seats-booked {
			return ErrCapacityExceeded
		}

		if err := tx.CreateBooking(ctx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil && booking.ContactEmail != "" {
		subject := i18n.T(ctx, "email_booking_subject")
		body := i18n.TData(ctx, "email_booking_body", map[string]any{
			"TourName": tour.Name,
			"TotalQty": booking.TotalQty,
			"Total":    fmt.Sprintf("%.2f", float64(booking.TotalCents)/100),
		})
		if err := s.mailer.Send(ctx, booking.ContactEmail, subject, body); err != nil {
			slog.Warn("booking_email_failed", "booking_id", booking.ID, "error", err)
		}
	}

	slog.Info("booking_created",
		"booking_id", booking.ID,
		"tour_id", booking.TourID,
		"total_qty", booking.TotalQty,
		"total_cents", booking.TotalCents,
	)
	return booking, nil
}

// RecordPayment applies a completed payment against a booking. The
// over-payment check and the flip to paid happen in one transaction;
// once cumulative completed payments reach the booking total, the
// booking transitions to paid.
func (s *Service) RecordPayment(ctx context.Context, bookingID, amountCents int64, method string) (*models.Payment, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := &models.Payment{
		BookingID:   bookingID,
		AmountCents: amountCents,
		Method:      method,
		Status:      models.PaymentCompleted,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}
		if booking.PaymentStatus == models.PaymentStatusCancelled ||
			booking.PaymentStatus == models.PaymentStatusFailed {
			return ErrBookingNotPayable
		}

		paid, err := tx.CompletedPaymentTotal(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}
		if paid+amountCents > booking.TotalCents {
			return ErrOverPayment
		}

		payment.UserID = booking.UserID
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if paid+amountCents == booking.TotalCents && booking.PaymentStatus == models.PaymentStatusPending {
			if err := tx.UpdateBookingStatus(ctx, bookingID, models.PaymentStatusPaid); err != nil {
				return fmt.Errorf("failed to update booking status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("payment_recorded", "booking_id", bookingID, "amount_cents", amountCents, "method", method)
	return payment, nil
}

// Cancel transitions a booking to cancelled. Only pending and paid
// bookings can be cancelled; refunding a paid booking is an external
// concern and not triggered here.
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		switch booking.PaymentStatus {
		case models.PaymentStatusCancelled:
			return ErrAlreadyCancelled
		case models.PaymentStatusPending, models.PaymentStatusPaid:
			// cancellable
		default:
			return ErrInvalidTransition
		}

		return tx.UpdateBookingStatus(ctx, bookingID, models.PaymentStatusCancelled)
	})
	if err != nil {
		return err
	}

	slog.Info("booking_cancelled", "booking_id", bookingID)
	return nil
}

// Get returns a booking by ID.
func (s *Service) Get(ctx context.Context, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// ListForUser returns a user's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.repo.ListBookingsByUser(ctx, userID)
}

// Payments returns the payments recorded against a booking.
func (s *Service) Payments(ctx context.Context, bookingID int64) ([]models.Payment, error) {
	return s.repo.ListPaymentsByBooking(ctx, bookingID)
}
