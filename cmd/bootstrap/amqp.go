package bootstrap

import (
	"context"

	"restobook/internal/infra/notify"
	"restobook/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewAMQPConnection,
		notify.NewPublisher,
		NewOutboxRelay,
	),
	fx.Invoke(StartOutboxRelay),
)

func NewAMQPConnection(lc fx.Lifecycle, cfg config.Config) (*notify.Connection, error) {
	conn, err := notify.Connect(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})

	return conn, nil
}

func NewOutboxRelay(pool *pgxpool.Pool, publisher *notify.Publisher, cfg config.Config) *notify.Relay {
	return notify.NewRelay(pool, publisher, cfg.AMQP.RelayInterval)
}

func StartOutboxRelay(lc fx.Lifecycle, relay *notify.Relay) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				relay.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
