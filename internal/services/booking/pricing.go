// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package booking

// Quantities are the per-category traveller counts of a booking.
type Quantities struct {
	Adult  int
	Child  int
	Infant int
}

// Total returns the sum of the category quantities.
func (q Quantities) Total() int {
	return q.Adult + q.Child + q.Infant
}

// UnitPrices are the per-category unit prices in cents.
type UnitPrices struct {
	AdultCents  int64
	ChildCents  int64
	InfantCents int64
}

// Quote is the priced result of a booking request. TotalCents always
// equals the sum of the category subtotals.
type Quote struct {
	AdultSubtotalCents  int64
	ChildSubtotalCents  int64
	InfantSubtotalCents int64
	TotalQty            int
	TotalCents          int64
}

// Price computes per-category subtotals, the total quantity and the
// total amount. It is a pure computation; no quantity or unit price
// may be negative.
func Price(q Quantities, p UnitPrices) (Quote, error) {
	if q.Adult < 0 || q.Child < 0 || q.Infant < 0 {
		return Quote{}, ErrInvalidQuantity
	}
	if p.AdultCents < 0 || p.ChildCents < 0 || p.InfantCents < 0 {
		return Quote{}, ErrInvalidPrice
	}

	quote := Quote{
		AdultSubtotalCents:  int64(q.Adult) * p.AdultCents,
		ChildSubtotalCents:  int64(q.Child) * p.ChildCents,
		InfantSubtotalCents: int64(q.Infant) * p.InfantCents,
		TotalQty:            q.Total(),
	}
	quote.TotalCents = quote.AdultSubtotalCents + quote.ChildSubtotalCents + quote.InfantSubtotalCents

	return quote, nil
}
