// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
//
// All commands follow a consistent pattern: a validated command object built
// through a constructor, and a handler that drives the dual-write protocol.
// Status-changing handlers execute the ledger contract function first and
// write the store second; a store failure after a successful ledger call is
// reported as a partial failure so the order can be reconciled, never hidden.
package commands
