// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// PaymentState is the state of an individual payment transaction.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
	PaymentFailed    PaymentState = "failed"
	PaymentRefunded  PaymentState = "refunded"
)

// Payment is a monetary transaction applied against a booking's
// total. The sum of completed payments for a booking must never
// exceed the booking's total amount.
type Payment struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64        `db:"id" json:"id"`
	BookingID   int64        `db:"booking_id" json:"booking_id"`
	UserID      int64        `db:"user_id" json:"user_id"`
	AmountCents int64        `db:"amount_cents" json:"amount_cents"`
	Method      string       `db:"method" json:"method"`
	Status      PaymentState `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}
