//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"salon-scheduler/cmd/bootstrap"
	"salon-scheduler/cmd/bootstrap/components"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/infra/uow"
	"salon-scheduler/internal/pkg/config"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "salon"
	pgPassword = "salonpass"
	pgPort     = "5432/tcp"
)

// One PostgreSQL container per test binary; every suite gets its own
// database inside it.
var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgErr       error
)

type pgEndpoint struct {
	Host string
	Port nat.Port
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.Host, e.Port.Port(), database)
}

func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)

	endpoint := startPostgres(t)
	dbCfg := createDatabase(t, endpoint)

	pool, closePool, err := db.Connect(context.Background(), dbCfg)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(closePool)

	require.NoError(t, applyMigrations(pool), "apply migrations")

	router, cfg, app := buildE2EApp(t, pool, dbCfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop e2e app", "error", err.Error())
		}
	})
	return pool, router, cfg
}

func startPostgres(t *testing.T) pgEndpoint {
	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{pgPort},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				// Durability is irrelevant for throwaway data.
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "full_page_writes=off",
					"-c", "synchronous_commit=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{Host: host, Port: port}.dsn("postgres")
				}).WithStartupTimeout(60 * time.Second),
				Labels: map[string]string{"purpose": "salon-scheduler-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgErr, "start postgres container")

	ctx := context.Background()
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	return pgEndpoint{Host: host, Port: port}
}

// createDatabase makes a fresh database and drops it when the test ends.
func createDatabase(t *testing.T, endpoint pgEndpoint) config.DBConfig {
	name := "salon_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	admin, err := pgxpool.New(ctx, endpoint.dsn("postgres"))
	require.NoError(t, err)
	defer admin.Close()

	// CREATE DATABASE can race with another package's template copy.
	for attempt := range 5 {
		if _, err = admin.Exec(ctx, "CREATE DATABASE "+name); err == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", err.Error())
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, endpoint.dsn("postgres"))
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     endpoint.Host,
		Port:     endpoint.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
		// Short enough that a stuck lock surfaces as 503 inside a test.
		LockTimeout: 2 * time.Second,
	}
}

// applyMigrations runs migrations/*.sql in name order. Tests run from
// their package directory, so the folder is searched upwards.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

func findMigrationsDir() (string, error) {
	dir := "migrations"
	for range 5 {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		dir = filepath.Join("..", dir)
	}
	return "", fmt.Errorf("migrations directory not found")
}

// buildE2EApp wires the production fx graph against the test pool.
func buildE2EApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) (*gin.Engine, config.Config, *fx.App) {
	var (
		router *gin.Engine
		cfg    config.Config
	)

	app := fx.New(
		fx.Provide(func() config.Config { return createTestConfig(dbCfg) }),
		fx.Provide(func(cfg config.Config) shared.UnitOfWork { return uow.NewPostgresUoW(pool, cfg) }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.CacheModule,
		bootstrap.PayoutModule,
		bootstrap.JWTModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start e2e app")
	require.NotNil(t, router)
	return router, cfg, app
}

func createTestConfig(dbCfg config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.Store.Driver = config.StoreDriverPostgres
	cfg.DB = dbCfg
	return cfg
}

// SharedSuite gives e2e suites a migrated database and the full router.
// Every subtest starts from empty tables.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	s.DB, s.Router, s.Config = setupE2EEnvironment(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Require().NoError(dbtest.ResetDB(s.DB), "reset database")
}
