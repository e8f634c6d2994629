// Package jobs provides scheduled background tasks for the order workflow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the request path cannot cover.
//
// # Available Jobs
//
// 1. EscrowAuditJob - Periodically scans for orders stuck in PENDING longer
// than the configured threshold. Such orders usually mean a funded escrow
// contract whose store write was lost, so the job surfaces them as
// reconciliation candidates for the recovery endpoint.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(gormDB, schedule, threshold, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The audit job only observes and logs. It never mutates order state, so a
// failed run is logged and retried on the next tick.
package jobs
