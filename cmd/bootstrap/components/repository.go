package components

import (
	"rifa-hub/internal/infra/db"
	"rifa-hub/internal/infra/readstore"
	"rifa-hub/internal/infra/repository"
	"rifa-hub/internal/infra/uow"
	"rifa-hub/internal/usecase/queries"
	"rifa-hub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Pool-bound write repositories for work outside a unit of work
		fx.Annotate(
			repository.NewTransactionRepository,
			fx.As(new(shared.TransactionRepository)),
		),
		fx.Annotate(
			repository.NewCampaignRepository,
			fx.As(new(shared.CampaignRepository)),
		),
		// Read-side stores
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.TransactionViewRepo)),
		),
		fx.Annotate(
			readstore.NewCampaignReadStore,
			fx.As(new(queries.CampaignViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
