package queries

import (
	"context"
	"database/sql"
	"time"

	"logistics/internal/core/domain/model/contract"
	"logistics/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableContractsQueryHandler retrieves the marketplace listing from the
// database. Uses direct SQL for optimal read performance in the CQRS pattern;
// the declined-agent filter runs inside the query so hidden orders never leave
// the database.
type GetAvailableContractsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableContractsQueryHandler creates a handler for marketplace
// listing queries.
func NewGetAvailableContractsQueryHandler(db *gorm.DB) GetAvailableContractsQueryHandler {
	return GetAvailableContractsQueryHandler{db: db}
}

// Handle executes the listing query.
// Returns pending, unclaimed orders ordered by creation time ascending; when
// the query names a browsing agent, orders that agent declined are filtered
// out inside the statement.
func (h GetAvailableContractsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableContractsQuery,
) ([]contract.Summary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statement := `
		SELECT
			id,
			contract_id,
			store_id,
			total_price,
			delivery_fee,
			status,
			created_at
		FROM orders
		WHERE status = ?
		  AND delivery_agent_id IS NULL`
	args := []any{order.Pending.String()}

	if agentID := query.ExcludingAgentID(); agentID != nil {
		statement += `
		  AND NOT (? = ANY(COALESCE(declined_agent_ids, '{}')))`
		args = append(args, agentID.String())
	}

	statement += `
		ORDER BY created_at ASC`

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// scanSummaries converts listing rows into contract summaries. Shared by the
// marketplace and dashboard queries, which select the same columns.
func scanSummaries(rows *sql.Rows) ([]contract.Summary, error) {
	summaries := make([]contract.Summary, 0)

	for rows.Next() {
		var (
			id         uuid.UUID
			contractID sql.NullString
			storeID    uuid.UUID
			totalPrice int64
			fee        int64
			status     string
			createdAt  time.Time
		)

		if err := rows.Scan(&id, &contractID, &storeID, &totalPrice, &fee, &status, &createdAt); err != nil {
			return nil, err
		}

		summaries = append(summaries, contract.Summary{
			OrderID:     id.String(),
			ContractID:  contractID.String,
			StoreID:     storeID.String(),
			TotalPrice:  totalPrice,
			DeliveryFee: fee,
			Status:      status,
			CreatedAt:   createdAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
