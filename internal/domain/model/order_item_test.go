package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeriveStatus tests status derivation from quantities.
func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		required  int
		purchased int
		reserved  int
		current   ItemStatus
		expected  ItemStatus
	}{
		{
			name:     "nothing satisfied is pending",
			required: 6, purchased: 0, reserved: 0,
			current:  StatusPending,
			expected: StatusPending,
		},
		{
			name:     "partially satisfied is purchased_partial",
			required: 6, purchased: 2, reserved: 0,
			current:  StatusPending,
			expected: StatusPurchasedPartial,
		},
		{
			name:     "purchase plus reservation covers required",
			required: 6, purchased: 2, reserved: 4,
			current:  StatusPurchasedPartial,
			expected: StatusPurchased,
		},
		{
			name:     "over-satisfied is still purchased",
			required: 6, purchased: 10, reserved: 0,
			current:  StatusPending,
			expected: StatusPurchased,
		},
		{
			name:     "reservation alone can fully satisfy",
			required: 6, purchased: 0, reserved: 6,
			current:  StatusPending,
			expected: StatusPurchased,
		},
		{
			name:     "quoted is recomputed from quantities",
			required: 6, purchased: 0, reserved: 0,
			current:  StatusQuoted,
			expected: StatusPending,
		},
		{
			name:     "in_separation is never regressed",
			required: 6, purchased: 0, reserved: 0,
			current:  StatusInSeparation,
			expected: StatusInSeparation,
		},
		{
			name:     "in_transit is never regressed",
			required: 6, purchased: 2, reserved: 0,
			current:  StatusInTransit,
			expected: StatusInTransit,
		},
		{
			name:     "delivered is never regressed",
			required: 6, purchased: 6, reserved: 0,
			current:  StatusDelivered,
			expected: StatusDelivered,
		},
		{
			name:     "zero required with satisfaction is purchased",
			required: 0, purchased: 1, reserved: 0,
			current:  StatusPending,
			expected: StatusPurchased,
		},
		{
			name:     "zero required with nothing is pending",
			required: 0, purchased: 0, reserved: 0,
			current:  StatusPending,
			expected: StatusPending,
		},
		{
			name:     "negative quantities are clamped",
			required: 6, purchased: -3, reserved: -1,
			current:  StatusPending,
			expected: StatusPending,
		},
		{
			name:     "unknown current status is treated as pending rank",
			required: 6, purchased: 6, reserved: 0,
			current:  ItemStatus("bogus"),
			expected: StatusPurchased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.required, tt.purchased, tt.reserved, tt.current)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestItemStatus_Rank tests the status ordering.
func TestItemStatus_Rank(t *testing.T) {
	ordered := []ItemStatus{
		StatusPending,
		StatusQuoted,
		StatusPurchasedPartial,
		StatusPurchased,
		StatusInSeparation,
		StatusInTransit,
		StatusDelivered,
	}

	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Rank(), ordered[i-1].Rank())
	}

	assert.Equal(t, StatusPending.Rank(), ItemStatus("bogus").Rank())
}

// TestItemStatus_IsValid tests status validation.
func TestItemStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPurchased.IsValid())
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, ItemStatus("bogus").IsValid())
	assert.False(t, ItemStatus("").IsValid())
}

// TestOrderItem_Shortfall tests shortfall computation.
func TestOrderItem_Shortfall(t *testing.T) {
	tests := []struct {
		name     string
		item     OrderItem
		expected int
	}{
		{
			name:     "unsatisfied item",
			item:     OrderItem{RequiredQuantity: 6},
			expected: 6,
		},
		{
			name:     "partially satisfied item",
			item:     OrderItem{RequiredQuantity: 6, PurchasedQuantity: 2, ReservedFromStockQuantity: 1},
			expected: 3,
		},
		{
			name:     "over-satisfied item clamps to zero",
			item:     OrderItem{RequiredQuantity: 6, PurchasedQuantity: 10},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.Shortfall())
		})
	}
}

// TestOrderItem_ApplyReservation tests reservation application and status recompute.
func TestOrderItem_ApplyReservation(t *testing.T) {
	item := OrderItem{
		OrderID:          "orderC",
		ItemCode:         "X-100",
		RequiredQuantity: 6,
		Status:           StatusPending,
	}

	item.ApplyReservation(4)
	assert.Equal(t, 4, item.ReservedFromStockQuantity)
	assert.Equal(t, StatusPurchasedPartial, item.Status)

	item.ApplyReservation(2)
	assert.Equal(t, 6, item.ReservedFromStockQuantity)
	assert.Equal(t, StatusPurchased, item.Status)
}
