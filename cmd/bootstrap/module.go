package bootstrap

import (
	"salon-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	CacheModule,
	PayoutModule,
	JWTModule,
	components.UseCaseModule,
	components.HandlerModule,
)
