package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrGetAgentContractsQueryIsNotConstructed = errors.New(
	"GetAgentContractsQuery must be created via NewGetAgentContractsQuery constructor",
)

// GetAgentContractsQuery lists the orders assigned to a delivery agent for
// their dashboard, newest first, including completed deliveries.
type GetAgentContractsQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentContractsQuery creates a dashboard query for the given agent.
func NewGetAgentContractsQuery(agentID kernel.UUID) (GetAgentContractsQuery, error) {
	query := GetAgentContractsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setAgentID(agentID); err != nil {
		return GetAgentContractsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAgentContractsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentContractsQueryIsNotConstructed)
}

// AgentID returns the dashboard's delivery agent.
func (q GetAgentContractsQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q *GetAgentContractsQuery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	q.agentID = agentID
	return nil
}
