// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// PaymentStatus is the payment state of a booking. Transitions only
// move forward: pending -> paid/cancelled, paid -> cancelled/failed.
// Cancelled and failed are terminal.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Booking reserves tour capacity for a user. Quantities and prices
// are split per category; TotalQty and TotalCents are derived from
// the categories and never mutated independently. The contact fields
// are a snapshot taken at booking time, independent of the user's
// current profile.
type Booking struct { //nolint:govet // fieldalignment: readability over optimization
	ID                  int64         `db:"id" json:"id"`
	UserID              int64         `db:"user_id" json:"user_id"`
	TourID              int64         `db:"tour_id" json:"tour_id"`
	AdultQty            int           `db:"adult_qty" json:"adult_qty"`
	ChildQty            int           `db:"child_qty" json:"child_qty"`
	InfantQty           int           `db:"infant_qty" json:"infant_qty"`
	AdultPriceCents     int64         `db:"adult_price_cents" json:"adult_price_cents"`
	ChildPriceCents     int64         `db:"child_price_cents" json:"child_price_cents"`
	InfantPriceCents    int64         `db:"infant_price_cents" json:"infant_price_cents"`
	TotalQty            int           `db:"total_qty" json:"total_qty"`
	TotalCents          int64         `db:"total_cents" json:"total_cents"`
	PaymentStatus       PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentRef          *string       `db:"payment_ref" json:"payment_ref,omitempty"`
	ContactName         string        `db:"contact_name" json:"contact_name"`
	ContactEmail        string        `db:"contact_email" json:"contact_email"`
	ContactPhone        string        `db:"contact_phone" json:"contact_phone"`
	SpecialRequirements *string       `db:"special_requirements" json:"special_requirements,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
}

// Reserved reports whether the booking still counts against the
// tour's capacity.
func (b *Booking) Reserved() bool {
	return b.PaymentStatus == PaymentStatusPending || b.PaymentStatus == PaymentStatusPaid
}
