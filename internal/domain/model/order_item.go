package model

// ItemStatus is the fulfillment status of a single order item.
//
// The purchased/stock-driven portion of the lifecycle (pending,
// purchased_partial, purchased) is owned by this service; the remaining
// stages are advanced by external signals (price quoted, invoice attached,
// tracking code set) and are never regressed here.
type ItemStatus string

const (
	StatusPending          ItemStatus = "pending"
	StatusQuoted           ItemStatus = "quoted"
	StatusPurchasedPartial ItemStatus = "purchased_partial"
	StatusPurchased        ItemStatus = "purchased"
	StatusInSeparation     ItemStatus = "in_separation"
	StatusInTransit        ItemStatus = "in_transit"
	StatusDelivered        ItemStatus = "delivered"
)

// statusRanks orders statuses along the lifecycle. Unknown statuses rank
// as pending so DeriveStatus stays total over arbitrary input.
var statusRanks = map[ItemStatus]int{
	StatusPending:          0,
	StatusQuoted:           1,
	StatusPurchasedPartial: 2,
	StatusPurchased:        3,
	StatusInSeparation:     4,
	StatusInTransit:        5,
	StatusDelivered:        6,
}

// Rank returns the lifecycle position of the status.
func (s ItemStatus) Rank() int {
	return statusRanks[s]
}

// IsValid reports whether the status is one of the defined lifecycle stages.
func (s ItemStatus) IsValid() bool {
	_, ok := statusRanks[s]
	return ok
}

// DeriveStatus recomputes an order item's status from its quantities.
//
// It is a pure, total function: any input produces exactly one defined
// status. Stages past purchased are monotonic and are returned unchanged;
// within the purchase-driven portion, satisfaction drives the transition:
//
//	total >= required  -> purchased
//	0 < total < required -> purchased_partial
//	total == 0 -> pending
//
// Negative quantities are clamped to zero; validation belongs upstream.
func DeriveStatus(required, purchased, reserved int, current ItemStatus) ItemStatus {
	if current.Rank() > StatusPurchased.Rank() {
		return current
	}

	if purchased < 0 {
		purchased = 0
	}
	if reserved < 0 {
		reserved = 0
	}
	total := purchased + reserved

	switch {
	case required > 0 && total >= required:
		return StatusPurchased
	case required <= 0 && total > 0:
		return StatusPurchased
	case total > 0:
		return StatusPurchasedPartial
	default:
		return StatusPending
	}
}

// OrderItem is a single line of a purchase order tracked by the
// fulfillment engine. Status is derived from the three quantities and is
// never set directly once stock logic is involved.
//
// @Description Order item with purchase and stock-reservation tracking
type OrderItem struct {
	// OrderID identifies the owning purchase order
	OrderID string `json:"order_id" bson:"order_id" example:"orderC"`
	// ItemIndex is the position of this item within the order
	ItemIndex int `json:"item_index" bson:"item_index" example:"0"`
	// ItemCode identifies the requested item
	ItemCode string `json:"item_code" bson:"item_code" example:"X-100"`
	// Description is free-form display text for the item
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	// RequiredQuantity is the quantity the order asks for
	RequiredQuantity int `json:"required_quantity" bson:"required_quantity" example:"6"`
	// PurchasedQuantity is the quantity satisfied by purchase
	PurchasedQuantity int `json:"purchased_quantity" bson:"purchased_quantity" example:"0"`
	// ReservedFromStockQuantity is the quantity satisfied from surplus stock
	ReservedFromStockQuantity int `json:"reserved_from_stock_quantity" bson:"reserved_from_stock_quantity" example:"6"`
	// Status is the derived fulfillment status
	Status ItemStatus `json:"status" bson:"status" example:"purchased"`
}

// TotalSatisfied returns purchased plus reserved quantity.
func (i OrderItem) TotalSatisfied() int {
	return i.PurchasedQuantity + i.ReservedFromStockQuantity
}

// Shortfall returns the quantity still missing, never negative.
func (i OrderItem) Shortfall() int {
	if s := i.RequiredQuantity - i.TotalSatisfied(); s > 0 {
		return s
	}
	return 0
}

// ApplyReservation adds fulfilled units to the reserved quantity and
// recomputes the status.
func (i *OrderItem) ApplyReservation(fulfilled int) {
	i.ReservedFromStockQuantity += fulfilled
	i.Status = DeriveStatus(i.RequiredQuantity, i.PurchasedQuantity, i.ReservedFromStockQuantity, i.Status)
}
