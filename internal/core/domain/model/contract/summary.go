package contract

import "time"

// Summary is the marketplace projection of an order as a claimable contract.
// It is a read model produced directly from the order store, so its fields
// are plain values rather than guarded domain objects.
type Summary struct {
	// OrderID identifies the order backing the contract.
	OrderID string

	// ContractID is the ledger contract holding the escrowed funds.
	ContractID string

	// StoreID identifies the store fulfilling the order.
	StoreID string

	// TotalPrice is the order total in ledger minor units.
	TotalPrice int64

	// DeliveryFee is the fee the claiming agent earns, in ledger minor units.
	DeliveryFee int64

	// Status is the order's current lifecycle status name.
	Status string

	// CreatedAt is when the order was placed. Available listings are served
	// oldest first so long-waiting orders are offered before new ones.
	CreatedAt time.Time
}
