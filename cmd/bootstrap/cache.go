package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/infra/cache"
	"salon-scheduler/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewSnapshotStore,
	),
)

// NewSnapshotStore falls back to a no-op cache when Redis is not
// configured or unreachable at startup. The memory store driver caches
// in-process instead.
func NewSnapshotStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *cache.SnapshotStore {
	if cfg.Redis.Addr == "" {
		if cfg.Store.Driver == config.StoreDriverMemory {
			return cache.NewSnapshotStore(cache.NewMemory(), cfg.Redis.SnapshotTTL)
		}
		return cache.NewSnapshotStore(cache.NewNoop(), cfg.Redis.SnapshotTTL)
	}

	rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, finance snapshots are not cached", "addr", cfg.Redis.Addr, "error", err.Error())
		_ = rc.Close()
		return cache.NewSnapshotStore(cache.NewNoop(), cfg.Redis.SnapshotTTL)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rc.Close()
		},
	})
	return cache.NewSnapshotStore(rc, cfg.Redis.SnapshotTTL)
}
