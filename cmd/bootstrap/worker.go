package bootstrap

import (
	"context"

	"rifa-hub/internal/infra/notify"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/commands"
	"rifa-hub/internal/usecase/shared"
	"rifa-hub/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(expiry commands.ExpiryCommands, cfg config.Config) *worker.Sweeper {
			return worker.NewSweeper(expiry, cfg.Worker)
		},
		func(uow shared.UnitOfWork, sender notify.Sender, clk clock.Clock, cfg config.Config) *worker.Notifier {
			return worker.NewNotifier(uow, sender, clk, cfg.Worker)
		},
	),
	fx.Invoke(startWorkers),
)

func startWorkers(lc fx.Lifecycle, sweeper *worker.Sweeper, notifier *worker.Notifier) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			sweeper.Start()
			notifier.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			notifier.Stop()
			return nil
		},
	})
}
