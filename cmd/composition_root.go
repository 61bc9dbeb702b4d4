package cmd

import (
	"log/slog"

	"returns/internal/adapters/out/notify"
	"returns/internal/adapters/out/postgres"
	"returns/internal/adapters/out/postgres/idemrepo"
	"returns/internal/adapters/out/tracking"
	"returns/internal/core/application/usecases/commands"
	"returns/internal/core/application/usecases/queries"
	"returns/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	trackingClient *tracking.Client
	publisher      *notify.SlogCaseEventPublisher
	logger         *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		trackingClient: tracking.NewClient(configs.TrackingBaseURL, configs.TrackingTimeout),
		publisher:      notify.NewSlogCaseEventPublisher(logger),
		logger:         logger,
	}
}

func (c *CompositionRoot) CreateCreateCaseCommandHandler() commands.CreateCaseCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCaseCommandHandler(f, c.trackingClient)
}

func (c *CompositionRoot) CreateLaunchExchangeCommandHandler() commands.LaunchExchangeCommandHandler {
	return commands.NewLaunchExchangeCommandHandler(c.caseUoWFactory())
}

func (c *CompositionRoot) CreateCreateExchangeParcelCommandHandler() commands.CreateExchangeParcelCommandHandler {
	return commands.NewCreateExchangeParcelCommandHandler(c.caseUoWFactory(), c.trackingClient)
}

func (c *CompositionRoot) CreateConvertToReturnCommandHandler() commands.ConvertToReturnCommandHandler {
	return commands.NewConvertToReturnCommandHandler(c.caseUoWFactory(), c.trackingClient)
}

func (c *CompositionRoot) CreateCloseCaseCommandHandler() commands.CloseCaseCommandHandler {
	return commands.NewCloseCaseCommandHandler(c.caseUoWFactory())
}

func (c *CompositionRoot) CreateUpdateReverseTrackCommandHandler() commands.UpdateReverseTrackCommandHandler {
	return commands.NewUpdateReverseTrackCommandHandler(c.caseUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.caseUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetCaseQueryHandler() queries.GetCaseQueryHandler {
	return queries.NewGetCaseQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCaseHistoryQueryHandler() queries.GetCaseHistoryQueryHandler {
	return queries.NewGetCaseHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(idemrepo.NewGormIdempotencyRepository(c.gormDB), c.logger)
}

func (c *CompositionRoot) caseUoWFactory() commands.CaseUoWFactory {
	return FuncCaseUoWFactory(func() commands.CaseUoW {
		return c.uowFactory.Create()
	})
}

type FuncCaseUoWFactory func() commands.CaseUoW

func (f FuncCaseUoWFactory) Create() commands.CaseUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
