package bootstrap

import (
	"restobook/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads environment configuration once at startup; everything
// else receives the parsed config through fx.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
