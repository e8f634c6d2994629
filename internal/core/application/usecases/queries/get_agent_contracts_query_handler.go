package queries

import (
	"context"

	"logistics/internal/core/domain/model/contract"

	"gorm.io/gorm"
)

// GetAgentContractsQueryHandler retrieves an agent's dashboard listing from
// the database.
type GetAgentContractsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentContractsQueryHandler creates a handler for agent dashboard
// queries.
func NewGetAgentContractsQueryHandler(db *gorm.DB) GetAgentContractsQueryHandler {
	return GetAgentContractsQueryHandler{db: db}
}

// Handle executes the dashboard query.
// Returns every order ever assigned to the agent, newest first, so active
// work sits at the top and history below.
func (h GetAgentContractsQueryHandler) Handle(
	ctx context.Context,
	query GetAgentContractsQuery,
) ([]contract.Summary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			contract_id,
			store_id,
			total_price,
			delivery_fee,
			status,
			created_at
		FROM orders
		WHERE delivery_agent_id = ?
		ORDER BY created_at DESC
	`, query.AgentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}
