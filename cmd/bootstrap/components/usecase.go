package components

import (
	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/usecase"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(s *cache.SnapshotStore) commands.SnapshotInvalidator { return s },
	func(s *cache.SnapshotStore) queries.SnapshotCache { return s },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewBlockedTimeUseCase,
		commands.NewPayoutUseCase,
		commands.NewTenantUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewScheduleQueries,
		queries.NewQueueQueries,
		queries.NewFinanceQueries,
		queries.NewCommissionQueries,
		queries.NewPublicQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
