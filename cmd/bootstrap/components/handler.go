package components

import (
	"salon-scheduler/internal/handler"
	"salon-scheduler/internal/handler/api"
	"salon-scheduler/internal/handler/middleware"
	"salon-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

type handlerParams struct {
	fx.In

	Booking    *api.BookingHandler
	Schedule   *api.ScheduleHandler
	Queue      *api.QueueHandler
	Finance    *api.FinanceHandler
	Commission *api.CommissionHandler
	Tenant     *api.TenantHandler
	Public     *api.PublicHandler
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewScheduleHandler,
		api.NewQueueHandler,
		api.NewFinanceHandler,
		api.NewCommissionHandler,
		api.NewTenantHandler,
		api.NewPublicHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit)
		},
		func(p handlerParams) handler.Handlers {
			return p.handlers()
		},
	),
	fx.Invoke(handler.NewRouter),
)

func (p handlerParams) handlers() handler.Handlers {
	return handler.Handlers{
		Booking:    p.Booking,
		Schedule:   p.Schedule,
		Queue:      p.Queue,
		Finance:    p.Finance,
		Commission: p.Commission,
		Tenant:     p.Tenant,
		Public:     p.Public,
	}
}
