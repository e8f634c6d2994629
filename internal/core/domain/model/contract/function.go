package contract

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// Function identifies an entry point of the escrow contract. The set is closed
// and checked at compile time: the workflow can only ever invoke one of these
// variants, so an unknown contract function is unrepresentable rather than a
// runtime lookup failure.
type Function int

const (
	// FunctionUnknown represents an invalid or undefined function.
	// This value (0) helps catch uninitialized Function values.
	FunctionUnknown Function = iota

	// FunctionFund moves the customer's payment into escrow custody.
	FunctionFund

	// FunctionAcceptDelivery binds the delivery agent to the contract and
	// stakes the delivery fee.
	FunctionAcceptDelivery

	// FunctionConfirmPickup records that the agent collected the goods.
	FunctionConfirmPickup

	// FunctionConfirmDelivery releases escrowed funds to the beneficiary
	// and the delivery fee to the agent.
	FunctionConfirmDelivery

	// FunctionRefund returns escrowed funds to the customer on cancellation.
	FunctionRefund
)

func getFunctionStrings() map[Function]string {
	return map[Function]string{
		FunctionUnknown:         "unknown",
		FunctionFund:            "fundContract",
		FunctionAcceptDelivery:  "acceptDelivery",
		FunctionConfirmPickup:   "confirmPickup",
		FunctionConfirmDelivery: "confirmDelivery",
		FunctionRefund:          "refund",
	}
}

func getValidFunctionStrings() map[Function]string {
	//nolint:exhaustive // FunctionUnknown is intentionally excluded as it's invalid
	return map[Function]string{
		FunctionFund:            "fundContract",
		FunctionAcceptDelivery:  "acceptDelivery",
		FunctionConfirmPickup:   "confirmPickup",
		FunctionConfirmDelivery: "confirmDelivery",
		FunctionRefund:          "refund",
	}
}

// Validate checks that the Function is one of the contract's entry points.
func (f Function) Validate() error {
	if _, ok := getValidFunctionStrings()[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("contract function",
			fmt.Errorf("%d is not a contract entry point", f))
	}
	return nil
}

// String returns the contract entry point name as deployed on the ledger.
// Implements fmt.Stringer; safe to call on any Function value.
func (f Function) String() string {
	if str, ok := getFunctionStrings()[f]; ok {
		return str
	}
	return "unknown"
}
