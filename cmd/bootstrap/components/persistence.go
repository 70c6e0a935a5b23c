package components

import (
	"restobook/internal/infra/cache"
	"restobook/internal/infra/db"
	"restobook/internal/infra/readstore"
	"restobook/internal/infra/uow"
	"restobook/internal/pkg/config"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"
	"restobook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewTableReadStore,
			fx.As(new(queries.TableReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentReadStore)),
		),
		fx.Annotate(
			readstore.NewFeedbackReadStore,
			fx.As(new(queries.FeedbackReadStore)),
		),
		// The menu read path goes through Redis; the Postgres store backs it.
		fx.Annotate(
			NewMenuCacheStore,
			fx.As(new(queries.MenuReadStore)),
			fx.As(new(commands.MenuCache)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewMenuCacheStore(dbtx db.DBTX, client *redis.Client, cfg config.Config) *cache.MenuCache {
	return cache.NewMenuCache(client, readstore.NewMenuReadStore(dbtx), cfg.Redis.MenuTTL)
}
