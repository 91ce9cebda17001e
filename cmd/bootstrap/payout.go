package bootstrap

import (
	"context"

	"salon-scheduler/internal/infra/payout"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var PayoutModule = fx.Module("payout",
	fx.Provide(
		NewPayoutGateway,
	),
)

func NewPayoutGateway(lc fx.Lifecycle, cfg config.Config) (commands.PayoutGateway, error) {
	if cfg.AMQP.URL == "" {
		return payout.NewLogGateway(), nil
	}

	pub, err := payout.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
