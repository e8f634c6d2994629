// Package order contains the Order aggregate and its Status state machine,
// the heart of the delivery-escrow workflow.
//
// An Order binds an off-chain record to an on-chain escrow contract. All
// mutations go through actor-checked transition methods that validate the
// caller's identity and the current status before touching anything, so the
// aggregate can never observe an illegal transition. Persistence-side races
// between concurrent transitions are closed by the store's compare-and-set
// updates, not by this package.
package order
