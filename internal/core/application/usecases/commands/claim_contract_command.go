package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrClaimContractCommandIsNotConstructed = errors.New(
	"ClaimContractCommand must be created via NewClaimContractCommand constructor",
)

// ClaimContractCommand represents a delivery agent's request to claim a
// pending order from the marketplace.
type ClaimContractCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimContractCommand creates a command to claim an order for an agent.
func NewClaimContractCommand(orderID, agentID kernel.UUID) (ClaimContractCommand, error) {
	cmd := ClaimContractCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
	); err != nil {
		return ClaimContractCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimContractCommand) Validate() error {
	return c.guard.Validate(ErrClaimContractCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c ClaimContractCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the claiming delivery agent.
func (c ClaimContractCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *ClaimContractCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimContractCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
