package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// EscrowAuditJob periodically reports orders stuck in the pending status.
// An order that stays pending past the threshold most likely lost its store
// write after the escrow contract was already deployed and funded, so each
// hit is logged with its contract reference for manual reconciliation.
type EscrowAuditJob struct {
	db        *gorm.DB
	cron      *cron.Cron
	schedule  string
	threshold time.Duration
	logger    *slog.Logger
}

// NewEscrowAuditJob creates the audit job. The schedule is a six-field cron
// expression with seconds; the threshold is how long an order may stay
// pending before it is reported.
func NewEscrowAuditJob(db *gorm.DB, schedule string, threshold time.Duration, logger *slog.Logger) *EscrowAuditJob {
	return &EscrowAuditJob{
		db:        db,
		cron:      cron.New(cron.WithSeconds()),
		schedule:  schedule,
		threshold: threshold,
		logger:    logger.With("component", "escrow_audit_job"),
	}
}

// Start schedules the audit to run on the configured cron expression.
func (j *EscrowAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.audit(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Escrow audit run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Escrow audit job started",
		"schedule", j.schedule, "threshold", j.threshold.String())
	return nil
}

// Stop stops the audit job.
func (j *EscrowAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Escrow audit job stopped")
}

func (j *EscrowAuditJob) audit(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-j.threshold)

	rows, err := j.db.WithContext(ctx).Raw(
		`SELECT id, contract_id, created_at
		   FROM orders
		  WHERE status = ? AND created_at < ?
		  ORDER BY created_at ASC`,
		order.Pending.String(), cutoff,
	).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID    string
			contractID *string
			createdAt  time.Time
		)
		if err = rows.Scan(&orderID, &contractID, &createdAt); err != nil {
			return err
		}

		attrs := []any{
			"orderId", orderID,
			"pendingFor", time.Since(createdAt).Round(time.Second).String(),
		}
		if contractID != nil {
			attrs = append(attrs, "contractId", *contractID)
		}
		j.logger.WarnContext(ctx, "Order stuck in pending, reconciliation candidate", attrs...)
	}

	return rows.Err()
}
