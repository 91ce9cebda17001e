//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/infra/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Execer is satisfied by a pool or a transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// CreateTestTenant inserts an active tenant with a 40% default rate.
func CreateTestTenant(t *testing.T, db Execer, name string, hours schedule.OperatingHours) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	raw, err := converter.HoursToJSON(hours)
	require.NoError(t, err)

	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-")) + "-" + tenantID.String()[:8]
	_, err = db.Exec(context.Background(),
		`INSERT INTO tenants (id, name, slug, hours, default_rate_bps, monthly_goal_cents)
		 VALUES ($1, $2, $3, $4, 4000, 100000)`,
		tenantID, name, slug, raw)
	require.NoError(t, err)

	return tenantID
}

func CreateTestProfessional(t *testing.T, db Execer, tenantID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO professionals (id, tenant_id, name) VALUES ($1, $2, $3)",
		id, tenantID, name)
	require.NoError(t, err)

	return id
}

func CreateTestService(t *testing.T, db Execer, tenantID uuid.UUID, name string, d time.Duration, priceCents int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, tenant_id, name, duration_seconds, price_cents) VALUES ($1, $2, $3, $4, $5)",
		id, tenantID, name, int32(d/time.Second), priceCents)
	require.NoError(t, err)

	return id
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
