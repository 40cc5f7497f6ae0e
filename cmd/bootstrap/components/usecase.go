package components

import (
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/pkg/rng"
	"rifa-hub/internal/usecase/commands"
	"rifa-hub/internal/usecase/queries"
	"rifa-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	rng.NewCryptoSeeded,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			transactionRepo shared.TransactionRepository,
			gateway shared.PixGateway,
			cfg config.Config,
			clk clock.Clock,
			draw rng.Source,
		) commands.CheckoutCommands {
			return commands.NewCheckoutCommands(uow, transactionRepo, gateway, cfg.Gateway, cfg.Checkout, clk, draw)
		},
		commands.NewPaymentEventCommands,
		commands.NewExpiryCommands,
		commands.NewCampaignCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTransactionQueries,
		queries.NewCampaignQueries,
	),
)
