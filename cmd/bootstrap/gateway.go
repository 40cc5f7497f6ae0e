package bootstrap

import (
	"rifa-hub/internal/infra/gateway"
	"rifa-hub/internal/infra/notify"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *gateway.Client {
				return gateway.NewClient(cfg.Gateway)
			},
			fx.As(new(shared.PixGateway)),
		),
		notify.NewLogSender,
	),
)
