package components

import (
	"shophub/internal/pkg/clock"
	"shophub/internal/pkg/jwt"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(s *jwt.Service) commands.TokenValidator {
		return s
	},
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewProductQueries,
		queries.NewStoreQueries,
		queries.NewCartQueries,
		queries.NewAccountQueries,
		queries.NewShippingQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderUseCase,
		commands.NewAuthUseCase,
		commands.NewStoreUseCase,
		commands.NewProductUseCase,
		commands.NewCartUseCase,
	),
)
