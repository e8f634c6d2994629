// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregate and read optimized models straight from the
// database.
package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetAvailableContractsQueryIsNotConstructed = errors.New(
	"GetAvailableContractsQuery must be created via NewGetAvailableContractsQuery constructor",
)

// GetAvailableContractsQuery lists pending, unclaimed orders on the
// marketplace. When a browsing delivery agent is named, orders that agent
// already declined are hidden; without one the full marketplace is returned.
// Results come back oldest first so long-waiting orders surface.
//
// Example:
//
//	query, err := NewGetAvailableContractsQuery(&agentID)
//	if err != nil {
//	    return err
//	}
//
//	contracts, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list available contracts: %w", err)
//	}
//	fmt.Printf("%d contracts open for claim\n", len(contracts))
type GetAvailableContractsQuery struct { //nolint:recvcheck //using for validation
	excludingAgentID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableContractsQuery creates a marketplace listing query. A nil
// agent lists the whole marketplace without the declined-orders filter.
func NewGetAvailableContractsQuery(excludingAgentID *kernel.UUID) (GetAvailableContractsQuery, error) {
	query := GetAvailableContractsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setExcludingAgentID(excludingAgentID); err != nil {
		return GetAvailableContractsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableContractsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableContractsQueryIsNotConstructed)
}

// ExcludingAgentID returns the browsing delivery agent whose declined orders
// are hidden, or nil when no agent filter applies.
func (q GetAvailableContractsQuery) ExcludingAgentID() *kernel.UUID {
	return q.excludingAgentID
}

func (q *GetAvailableContractsQuery) setExcludingAgentID(agentID *kernel.UUID) error {
	if agentID == nil {
		return nil
	}

	if err := agentID.Validate(); err != nil {
		return err
	}

	value := *agentID
	q.excludingAgentID = &value
	return nil
}
