package order

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrTotalPriceIsNotPositive is returned when an order's total price is zero.
	ErrTotalPriceIsNotPositive = errors.New("total price must be greater than 0")
)

// Timestamps records when each lifecycle transition happened. CreatedAt is
// always set; the rest are set exactly once by their transition and never
// cleared, preserving the audit history even for cancelled orders.
type Timestamps struct {
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	RatedAt     *time.Time
	CancelledAt *time.Time
}

// Order is the aggregate root of the delivery-escrow workflow. It binds the
// off-chain order record to the on-chain escrow contract and enforces the
// actor-scoped state machine for every transition.
//
// Order invariants:
//   - userID, storeID, totalPrice and deliveryFee are fixed at creation
//   - contractID is set exactly once, after a successful ledger deployment
//   - deliveryAgentID is set exactly once, by the claim, and only while Pending
//   - the agent is set if and only if the status is Assigned or later
//   - rating is set exactly once, only while Delivered, and only in [1, 5]
//   - orders are never deleted; Cancelled is a terminal status, not removal
//
// Transition methods validate the caller's identity and the current status
// before mutating anything, so a rejected call leaves the aggregate untouched.
type Order struct {
	id      kernel.UUID
	userID  kernel.UUID
	storeID kernel.UUID

	totalPrice  kernel.Money
	deliveryFee kernel.Money

	status          Status
	contractID      *contract.ID
	deliveryAgentID *kernel.UUID

	rating *int
	review *string

	// declinedAgents lists agents that passed on this order while it was
	// Pending; the marketplace hides the order from them on later listings.
	declinedAgents []kernel.UUID

	timestamps Timestamps

	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: unique order identifier
//   - userID: the customer placing the order
//   - storeID: the store fulfilling the order; also the escrow beneficiary
//   - totalPrice: order total in ledger minor units, must be positive
//   - deliveryFee: agent's fee in ledger minor units, may be zero
//   - createdAt: placement time, recorded in the audit trail
//
// The contract ID is not part of construction: it is attached via
// AttachContract once the ledger deployment succeeds, keeping the
// "no contract pointer without a deployed contract" invariant explicit.
func NewOrder(
	id, userID, storeID kernel.UUID,
	totalPrice, deliveryFee kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	ord := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		ord.setID(id),
		ord.setParties(userID, storeID),
		ord.setAmounts(totalPrice, deliveryFee),
	); err != nil {
		return nil, err
	}

	ord.timestamps.CreatedAt = createdAt
	return ord, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time side effects. It validates the stored state against the
// aggregate invariants, in particular status/agent consistency.
func RestoreOrder(
	id, userID, storeID kernel.UUID,
	totalPrice, deliveryFee kernel.Money,
	status Status,
	contractID *contract.ID,
	deliveryAgentID *kernel.UUID,
	rating *int,
	review *string,
	declinedAgents []kernel.UUID,
	timestamps Timestamps,
) (*Order, error) {
	ord := &Order{
		status:        status,
		isConstructed: true,
	}

	if err := errors.Join(
		ord.setID(id),
		ord.setParties(userID, storeID),
		ord.setAmounts(totalPrice, deliveryFee),
		status.Validate(),
		status.ValidateCanHaveAgent(deliveryAgentID != nil),
	); err != nil {
		return nil, err
	}

	ord.contractID = contractID
	ord.deliveryAgentID = deliveryAgentID
	ord.rating = rating
	ord.review = review
	ord.declinedAgents = declinedAgents
	ord.timestamps = timestamps
	return ord, nil
}

// Validate ensures the Order instance was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// StoreID returns the store fulfilling the order.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// TotalPrice returns the order total in ledger minor units.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// DeliveryFee returns the delivery fee in ledger minor units.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// EscrowAmount returns the full amount held in custody: total price plus
// delivery fee. This is the amount the escrow contract is deployed with.
func (o *Order) EscrowAmount() (kernel.Money, error) {
	return o.totalPrice.Add(o.deliveryFee)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Contract returns the escrow contract ID, or nil before deployment completed.
func (o *Order) Contract() *contract.ID {
	return o.contractID
}

// DeliveryAgent returns the assigned agent's ID, or nil while unclaimed.
func (o *Order) DeliveryAgent() *kernel.UUID {
	return o.deliveryAgentID
}

// Rating returns the delivery rating, or nil if not rated yet.
func (o *Order) Rating() *int {
	return o.rating
}

// Review returns the optional review text, or nil if none was left.
func (o *Order) Review() *string {
	return o.review
}

// DeclinedAgents returns the agents that passed on this order.
func (o *Order) DeclinedAgents() []kernel.UUID {
	return o.declinedAgents
}

// Timestamps returns the transition audit trail.
func (o *Order) Timestamps() Timestamps {
	return o.timestamps
}

// AttachContract records the ledger contract backing this order. The pointer
// is set exactly once, right after a successful deployment; a second attach
// attempt means two contracts were created for one order and fails Conflict.
func (o *Order) AttachContract(id contract.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if o.contractID != nil {
		return errs.NewConflictError("contract ID is already attached")
	}

	o.contractID = &id
	return nil
}

// Claim assigns the order to a delivery agent and moves it to Assigned.
// Fails AlreadyClaimed if the order is not Pending or another agent already
// holds the claim. The claim is immutable once granted.
//
// Claim validates against this aggregate's snapshot; closing the race between
// two concurrent claimers is the store layer's compare-and-set job.
func (o *Order) Claim(agentID kernel.UUID, at time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.deliveryAgentID != nil {
		return errs.NewAlreadyClaimedError(o.id.String())
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return errs.NewAlreadyClaimedError(o.id.String())
	}

	o.status = newStatus
	o.deliveryAgentID = &agentID
	o.timestamps.AssignedAt = &at
	return nil
}

// Decline records that an agent passed on this order while it was offered on
// the marketplace. Declining is idempotent per agent and only possible while
// the order is Pending and unclaimed.
func (o *Order) Decline(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.status != Pending || o.deliveryAgentID != nil {
		return errs.NewInvalidStateError("declineContract", o.status.String())
	}

	for _, declined := range o.declinedAgents {
		if declined.IsEqual(agentID) {
			return nil
		}
	}

	o.declinedAgents = append(o.declinedAgents, agentID)
	return nil
}

// AcceptDelivery confirms the assigned agent's acceptance and moves the order
// to PickedUp. Only the assigned agent may accept.
func (o *Order) AcceptDelivery(agentID kernel.UUID, at time.Time) error {
	if err := o.authorizeAgent(agentID, "acceptDelivery"); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timestamps.PickedUpAt = &at
	return nil
}

// ConfirmPickup confirms the goods were collected and moves the order to
// InTransit. Only the assigned agent may confirm, from Assigned or PickedUp.
func (o *Order) ConfirmPickup(agentID kernel.UUID, at time.Time) error {
	if err := o.authorizeAgent(agentID, "confirmPickup"); err != nil {
		return err
	}

	newStatus, err := o.status.Pickup()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timestamps.InTransitAt = &at
	return nil
}

// ConfirmDelivery confirms receipt and moves the order to Delivered.
// Only the order's customer may confirm, and only from InTransit.
func (o *Order) ConfirmDelivery(customerID kernel.UUID, at time.Time) error {
	if err := o.authorizeCustomer(customerID, "confirmDelivery"); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timestamps.DeliveredAt = &at
	return nil
}

// Rate records the customer's delivery rating and optional review.
// Only the order's customer may rate, only while Delivered, only once, and
// only with a rating in [1, 5]. Rating does not change the status.
func (o *Order) Rate(customerID kernel.UUID, rating int, review *string, at time.Time) error {
	if err := o.authorizeCustomer(customerID, "rateDelivery"); err != nil {
		return err
	}
	if o.status != Delivered {
		return errs.NewInvalidStateError("rateDelivery", o.status.String())
	}
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	if o.rating != nil {
		return errs.NewConflictError("rating is already set")
	}

	o.rating = &rating
	o.review = review
	o.timestamps.RatedAt = &at
	return nil
}

// Cancel moves a Pending order to Cancelled. The customer or the order's
// store may cancel; any other actor fails Unauthorized. Cancellation from
// any other status fails InvalidState: once an agent claimed the order the
// refund path no longer exists.
func (o *Order) Cancel(actorID kernel.UUID, at time.Time) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if !actorID.IsEqual(o.userID) && !actorID.IsEqual(o.storeID) {
		return errs.NewUnauthorizedError(actorID.String(), "cancelOrder")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timestamps.CancelledAt = &at
	return nil
}

// Converge re-applies a transition's store-side effect during reconciliation
// after a partial failure, when the ledger already moved but the record did
// not. It is idempotent: converging to the current status is a no-op. Actor
// checks are skipped because the original operation already performed them
// before the ledger call.
func (o *Order) Converge(target Status, at time.Time) error {
	if o.status == target {
		return nil
	}

	switch target {
	case PickedUp:
		newStatus, err := o.status.Accept()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.timestamps.PickedUpAt = &at
	case InTransit:
		newStatus, err := o.status.Pickup()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.timestamps.InTransitAt = &at
	case Delivered:
		newStatus, err := o.status.Deliver()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.timestamps.DeliveredAt = &at
	case Cancelled:
		newStatus, err := o.status.Cancel()
		if err != nil {
			return err
		}
		o.status = newStatus
		o.timestamps.CancelledAt = &at
	default:
		return errs.NewInvalidStateError("recoverOrder", target.String())
	}

	return nil
}

func (o *Order) authorizeAgent(agentID kernel.UUID, operation string) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.deliveryAgentID == nil || !o.deliveryAgentID.IsEqual(agentID) {
		return errs.NewUnauthorizedError(agentID.String(), operation)
	}
	return nil
}

func (o *Order) authorizeCustomer(customerID kernel.UUID, operation string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if !customerID.IsEqual(o.userID) {
		return errs.NewUnauthorizedError(customerID.String(), operation)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(userID, storeID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	o.storeID = storeID
	return nil
}

func (o *Order) setAmounts(totalPrice, deliveryFee kernel.Money) error {
	if err := totalPrice.Validate(); err != nil {
		return err
	}
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	if !totalPrice.IsPositive() {
		return ErrTotalPriceIsNotPositive
	}
	o.totalPrice = totalPrice
	o.deliveryFee = deliveryFee
	return nil
}
