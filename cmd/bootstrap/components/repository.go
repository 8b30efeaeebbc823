package components

import (
	"shophub/internal/infra/db"
	"shophub/internal/infra/readstore"
	"shophub/internal/infra/repository"
	"shophub/internal/usecase/commands"
	"shophub/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			repository.NewOrderRepository,
			fx.As(new(commands.OrderRepository)),
		),
		fx.Annotate(
			repository.NewInventoryRepository,
			fx.As(new(commands.InventoryRepository)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repository.NewAccountRepository,
			fx.As(new(commands.AccountRepository)),
		),
		fx.Annotate(
			repository.NewStoreRepository,
			fx.As(new(commands.StoreRepository)),
		),
		fx.Annotate(
			repository.NewProductRepository,
			fx.As(new(commands.ProductRepository)),
		),
		fx.Annotate(
			repository.NewCartRepository,
			fx.As(new(commands.CartRepository)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.ProductViewRepo)),
		),
		fx.Annotate(
			readstore.NewStoreReadStore,
			fx.As(new(queries.StoreViewRepo)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewRepo)),
		),
		fx.Annotate(
			readstore.NewAccountReadStore,
			fx.As(new(queries.AccountViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
