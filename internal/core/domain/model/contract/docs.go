// Package contract provides value objects describing the escrow contract that
// backs every order: the ledger-resident contract identifier, the closed set
// of contract entry points the workflow may invoke, and the marketplace
// projection of an order as a claimable contract.
//
// The ledger is the sole source of truth for fund movement. The order record
// only carries a contract.ID pointer and a best-effort mirror of custody
// state; nothing in this package duplicates ledger balances.
package contract
