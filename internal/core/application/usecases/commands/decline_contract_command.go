package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrDeclineContractCommandIsNotConstructed = errors.New(
	"DeclineContractCommand must be created via NewDeclineContractCommand constructor",
)

// DeclineContractCommand represents a delivery agent passing on a marketplace
// order, hiding it from their future listings.
type DeclineContractCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineContractCommand creates a command to decline an order.
func NewDeclineContractCommand(orderID, agentID kernel.UUID) (DeclineContractCommand, error) {
	cmd := DeclineContractCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
	); err != nil {
		return DeclineContractCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineContractCommand) Validate() error {
	return c.guard.Validate(ErrDeclineContractCommandIsNotConstructed)
}

// OrderID returns the order being declined.
func (c DeclineContractCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the declining delivery agent.
func (c DeclineContractCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *DeclineContractCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeclineContractCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
