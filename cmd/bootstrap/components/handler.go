package components

import (
	"rifa-hub/internal/handler"
	"rifa-hub/internal/handler/api"
	"rifa-hub/internal/handler/middleware"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCampaignHandler,
		api.NewCheckoutHandler,
		api.NewTransactionHandler,
		func(events commands.PaymentEventCommands, cfg config.Config) *api.WebhookHandler {
			return api.NewWebhookHandler(events, cfg.Gateway)
		},
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
