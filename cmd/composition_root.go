package cmd

import (
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/ledger"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. It owns no
// lifecycle; connections are opened and closed by the caller.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	orders ports.OrderRepository
	ledger ports.EscrowLedgerClient
	events ports.OrderEventPublisher
	logger *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	orders ports.OrderRepository,
	events ports.OrderEventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config: config,
		gormDB: gormDB,
		orders: orders,
		ledger: ledger.NewClient(config.LedgerGatewayURL, config.LedgerTimeout),
		events: events,
		logger: logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders, c.ledger, c.events, c.logger)
}

func (c *CompositionRoot) CreateClaimContractCommandHandler() commands.ClaimContractCommandHandler {
	return commands.NewClaimContractCommandHandler(c.orders, c.events, c.logger)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.orders, c.ledger, c.events, c.logger)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.orders, c.ledger, c.events, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.orders, c.ledger, c.events, c.logger)
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orders, c.ledger, c.events, c.logger)
}

func (c *CompositionRoot) CreateDeclineContractCommandHandler() commands.DeclineContractCommandHandler {
	return commands.NewDeclineContractCommandHandler(c.orders)
}

func (c *CompositionRoot) CreateRecoverOrderCommandHandler() commands.RecoverOrderCommandHandler {
	return commands.NewRecoverOrderCommandHandler(c.orders, c.events, c.logger)
}

func (c *CompositionRoot) CreateGetAvailableContractsQueryHandler() queries.GetAvailableContractsQueryHandler {
	return queries.NewGetAvailableContractsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentContractsQueryHandler() queries.GetAgentContractsQueryHandler {
	return queries.NewGetAgentContractsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateServer assembles the HTTP server over every handler.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateClaimContractCommandHandler(),
		c.CreateAcceptDeliveryCommandHandler(),
		c.CreateConfirmPickupCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateRateDeliveryCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateDeclineContractCommandHandler(),
		c.CreateRecoverOrderCommandHandler(),
		c.CreateGetAvailableContractsQueryHandler(),
		c.CreateGetAgentContractsQueryHandler(),
		c.CreateGetOrderQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.gormDB, c.config.AuditSchedule, c.config.PendingThreshold, c.logger)
}
