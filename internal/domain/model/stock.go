// Package model defines the core domain entities for the fulfillment service.
package model

import "time"

// StockUnit is a fungible quantity of one item code held as reusable surplus,
// tagged with the order that produced it.
//
// @Description Surplus stock unit with provenance
// @Example {"item_code": "X-100", "quantity": 5, "source_order_id": "orderA"}
type StockUnit struct {
	// ItemCode identifies the item this unit belongs to
	ItemCode string `json:"item_code" bson:"item_code" example:"X-100"`
	// Quantity is the number of units still available; always positive
	Quantity int `json:"quantity" bson:"quantity" example:"5" minimum:"1"`
	// SourceOrderID is the order whose surplus produced this unit
	SourceOrderID string `json:"source_order_id" bson:"source_order_id" example:"orderA"`
	// CreatedAt is when the surplus was credited
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ReservationRequest asks for surplus units of an item code to be
// consumed on behalf of a target order item.
type ReservationRequest struct {
	// TargetOrderID is the order whose item receives the reserved units
	TargetOrderID string `json:"target_order_id" example:"orderC"`
	// TargetItemIndex is the index of the item within the target order
	TargetItemIndex int `json:"target_item_index" example:"0"`
	// ItemCode is the item whose surplus pool is consumed
	ItemCode string `json:"item_code" example:"X-100"`
	// QuantityRequested is the number of units to reserve; always positive
	QuantityRequested int `json:"quantity_requested" example:"6" minimum:"1"`
}

// ReservationSource records how many units a single originating order
// contributed to a fulfilled reservation.
type ReservationSource struct {
	// SourceOrderID is the order that contributed the units
	SourceOrderID string `json:"source_order_id" bson:"source_order_id" example:"orderA"`
	// QuantityTaken is the number of units consumed from that order's surplus
	QuantityTaken int `json:"quantity_taken" bson:"quantity_taken" example:"5"`
}

// ReservationResult is the outcome of consuming surplus for a reservation.
// QuantityFulfilled + RemainingShortfall always equals QuantityRequested,
// and the source quantities always sum to QuantityFulfilled.
//
// @Description Result of a stock reservation, including provenance breakdown
// @Example {"quantity_requested": 6, "quantity_fulfilled": 6, "sources": [{"source_order_id": "orderA", "quantity_taken": 5}, {"source_order_id": "orderB", "quantity_taken": 1}], "remaining_shortfall": 0}
type ReservationResult struct {
	// QuantityRequested is the quantity the caller asked for
	QuantityRequested int `json:"quantity_requested" example:"6"`
	// QuantityFulfilled is the quantity actually consumed from surplus
	QuantityFulfilled int `json:"quantity_fulfilled" example:"6"`
	// Sources lists which orders contributed the fulfilled units, in consumption order
	Sources []ReservationSource `json:"sources"`
	// RemainingShortfall is the portion that could not be covered by surplus
	RemainingShortfall int `json:"remaining_shortfall" example:"0"`
}

// EmptyReservation returns a ReservationResult in which nothing was fulfilled.
func EmptyReservation(requested int) ReservationResult {
	return ReservationResult{
		QuantityRequested:  requested,
		QuantityFulfilled:  0,
		Sources:            []ReservationSource{},
		RemainingShortfall: requested,
	}
}

// IsPartial reports whether the reservation left a shortfall.
func (r ReservationResult) IsPartial() bool {
	return r.RemainingShortfall > 0
}

// AvailableQuantity returns the total live surplus across units.
func AvailableQuantity(units []StockUnit) int {
	total := 0
	for _, u := range units {
		total += u.Quantity
	}
	return total
}

// SourceBreakdown aggregates units into per-source quantities, preserving
// FIFO order. Consecutive units from the same order are merged.
func SourceBreakdown(units []StockUnit) []ReservationSource {
	sources := make([]ReservationSource, 0, len(units))
	for _, u := range units {
		if n := len(sources); n > 0 && sources[n-1].SourceOrderID == u.SourceOrderID {
			sources[n-1].QuantityTaken += u.Quantity
			continue
		}
		sources = append(sources, ReservationSource{
			SourceOrderID: u.SourceOrderID,
			QuantityTaken: u.Quantity,
		})
	}
	return sources
}

// DebitUnits consumes quantity from the front of the FIFO unit sequence.
// Partially consumed units keep their position with a reduced quantity;
// fully consumed units are dropped. It never mutates the input slice.
//
// The returned remaining slice holds only units with Quantity > 0, and the
// result satisfies fulfilled + shortfall == quantity.
func DebitUnits(units []StockUnit, quantity int) ([]StockUnit, ReservationResult) {
	if quantity <= 0 {
		return cloneUnits(units), EmptyReservation(quantity)
	}

	remaining := make([]StockUnit, 0, len(units))
	result := ReservationResult{
		QuantityRequested: quantity,
		Sources:           []ReservationSource{},
	}

	left := quantity
	for _, u := range units {
		if left == 0 {
			remaining = append(remaining, u)
			continue
		}

		taken := u.Quantity
		if taken > left {
			taken = left
		}
		left -= taken
		result.QuantityFulfilled += taken
		result.Sources = append(result.Sources, ReservationSource{
			SourceOrderID: u.SourceOrderID,
			QuantityTaken: taken,
		})

		if rest := u.Quantity - taken; rest > 0 {
			u.Quantity = rest
			remaining = append(remaining, u)
		}
	}

	result.RemainingShortfall = left
	return remaining, result
}

// CreditUnits appends a new surplus unit to the back of the FIFO sequence.
// The input slice is not mutated.
func CreditUnits(units []StockUnit, unit StockUnit) []StockUnit {
	out := make([]StockUnit, 0, len(units)+1)
	out = append(out, units...)
	out = append(out, unit)
	return out
}

func cloneUnits(units []StockUnit) []StockUnit {
	out := make([]StockUnit, len(units))
	copy(out, units)
	return out
}
