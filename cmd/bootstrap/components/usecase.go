package components

import (
	"restobook/internal/infra/gateway"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/config"
	"restobook/internal/usecase"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewTokenValidator,
	NewPaymentGateway,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewTableCommands,
		commands.NewBookingCommands,
		commands.NewOrderCommands,
		commands.NewPaymentCommands,
		commands.NewMenuCommands,
		commands.NewFeedbackCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewTableQueries,
		queries.NewBookingQueries,
		queries.NewOrderQueries,
		queries.NewPaymentQueries,
		queries.NewMenuQueries,
		queries.NewFeedbackQueries,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return gateway.NewRazorpayGateway(cfg.Gateway)
}
