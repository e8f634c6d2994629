// Package services provides domain services that orchestrate business rules
// spanning the order aggregate and the escrow contract. It implements workflow
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - EscrowSequencer: maps order transitions to their ledger contract
//     functions and classifies failures of the ledger-then-store write pair
//
// Domain services coordinate between the off-chain record and the on-chain
// contract, keeping that coordination logic out of the command handlers.
package services
