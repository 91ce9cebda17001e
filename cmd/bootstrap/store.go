package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/memstore"
	"salon-scheduler/internal/infra/uow"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork opens the store selected by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		store := memstore.NewStore()
		if err := seedDemo(store, logger); err != nil {
			return nil, err
		}
		logger.Warn("using in-memory store; state is lost on restart")
		return memstore.NewUnitOfWork(store), nil
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool, cfg), nil
}

// seedDemo gives the memory store one open tenant to book against.
func seedDemo(store *memstore.Store, logger *slog.Logger) error {
	open, err := schedule.NewDayRange(9*60, 18*60)
	if err != nil {
		return err
	}
	weekly := map[time.Weekday][]schedule.DayRange{}
	for d := time.Monday; d <= time.Saturday; d++ {
		weekly[d] = []schedule.DayRange{open}
	}
	hours, err := schedule.NewOperatingHours("UTC", weekly)
	if err != nil {
		return err
	}
	rate, err := commission.NewRate(4000)
	if err != nil {
		return err
	}
	t, err := tenant.NewTenant("Demo Salon", "demo-salon", hours, rate, 1_000_000, time.Now())
	if err != nil {
		return err
	}
	pro, err := professional.NewProfessional(t.ID(), "Demo Stylist", nil)
	if err != nil {
		return err
	}
	cut, err := catalog.NewService(t.ID(), "Haircut", 30*time.Minute, 3000, nil)
	if err != nil {
		return err
	}

	store.PutTenant(t)
	store.PutProfessional(pro)
	store.PutService(cut)

	logger.Info("seeded demo tenant",
		"tenant_id", t.ID().String(),
		"professional_id", pro.ID().String(),
		"service_id", cut.ID().String())
	return nil
}
