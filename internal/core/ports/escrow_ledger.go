package ports

import (
	"context"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
)

// Receipt is the ledger's acknowledgement of an executed contract call.
type Receipt struct {
	// ContractID identifies the escrow contract the call ran against.
	ContractID contract.ID

	// TransactionID is the ledger transaction that carried the call, when
	// the gateway reports one.
	TransactionID string

	// Status is the consensus status reported by the ledger ("SUCCESS" on
	// the happy path).
	Status string
}

// EscrowLedgerClient defines the contract for driving an order's escrow
// lifecycle on the ledger.
//
// The method set is closed: each supported contract function gets its own
// typed method, so a caller can neither invoke an unknown function nor pass
// malformed parameters. Implementations translate these calls into whatever
// deploy/execute primitives the ledger gateway exposes.
//
// Errors are classified: LedgerTimeoutError when the call may or may not have
// landed (outcome unknown), LedgerFailureError when the ledger definitively
// rejected it. Callers rely on the distinction to decide between reconciliation
// and plain failure.
type EscrowLedgerClient interface {
	// DeployEscrow creates a new escrow contract for an order, owned by the
	// store and parameterized with the amount payable to the store and the
	// delivery fee payable to the agent. Returns the new contract's identifier.
	DeployEscrow(ctx context.Context, storeID kernel.UUID, amount kernel.Money, fee kernel.Money) (contract.ID, error)

	// FundEscrow transfers the full escrow amount (price plus fee) from the
	// customer into the contract.
	FundEscrow(ctx context.Context, contractID contract.ID, amount kernel.Money) (Receipt, error)

	// AcceptDelivery records on the ledger that the agent committed to the
	// delivery, staking against the delivery fee.
	AcceptDelivery(ctx context.Context, contractID contract.ID, agentID kernel.UUID, fee kernel.Money) (Receipt, error)

	// ConfirmPickup records on the ledger that the agent collected the goods.
	ConfirmPickup(ctx context.Context, contractID contract.ID) (Receipt, error)

	// ConfirmDelivery releases the escrowed funds: the price to the store and
	// the fee to the agent.
	ConfirmDelivery(ctx context.Context, contractID contract.ID, customerID kernel.UUID, storeID kernel.UUID, agentID kernel.UUID) (Receipt, error)

	// Refund returns the escrowed funds to the customer on cancellation.
	Refund(ctx context.Context, contractID contract.ID) (Receipt, error)
}
