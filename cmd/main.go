package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"salon-scheduler/cmd/bootstrap"
	"salon-scheduler/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Release unless GIN_MODE says otherwise, so a missing env var never
	// exposes swagger or debug output.
	gin.SetMode(gin.ReleaseMode)
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

// @title           salon-scheduler
// @version         1.0
// @description     Multi-tenant booking engine for salons: calendars, queue, finance and commissions.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func startServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			logger.Info("http server starting", "address", srv.Addr, "mode", gin.Mode(), "store", cfg.Store.Driver)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server stopped unexpectedly", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("http server draining")
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	var cfg config.Config
	app := fx.New(
		bootstrap.Module,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		fx.Invoke(startServer),
		fx.Populate(&cfg),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("salon-scheduler failed to start", "error", err)
		os.Exit(1)
	}

	sig := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("salon-scheduler failed to stop cleanly", "error", err)
	}
	cancel()

	slog.Info("salon-scheduler stopped", "exit_code", sig.ExitCode)
	os.Exit(sig.ExitCode)
}
