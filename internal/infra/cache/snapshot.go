package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"salon-scheduler/internal/domain/finance"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	generationKeyPrefix = "finance:gen:"
	snapshotKeyPrefix   = "finance:snap:"
)

// SnapshotStore caches finance snapshots under a per-tenant generation
// counter. Bumping the counter orphans every older entry; the TTL reclaims
// them.
type SnapshotStore struct {
	cache Cache
	ttl   time.Duration
}

func NewSnapshotStore(c Cache, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{cache: c, ttl: ttl}
}

func generationKey(tenantID uuid.UUID) string {
	return generationKeyPrefix + tenantID.String()
}

func snapshotKey(tenantID uuid.UUID, generation int64, period finance.Period) string {
	return fmt.Sprintf("%s%s:%d:%s", snapshotKeyPrefix, tenantID, generation, period.String())
}

func (s *SnapshotStore) Generation(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	raw, ok, err := s.cache.Get(ctx, generationKey(tenantID))
	if err != nil {
		return 0, errs.Wrap(err, "read snapshot generation")
	}
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, errs.Wrap(err, "parse snapshot generation")
	}
	return gen, nil
}

func (s *SnapshotStore) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if _, err := s.cache.Incr(ctx, generationKey(tenantID)); err != nil {
		return errs.Wrap(err, "bump snapshot generation")
	}
	return nil
}

func (s *SnapshotStore) Get(ctx context.Context, tenantID uuid.UUID, generation int64, period finance.Period) (*finance.Snapshot, bool, error) {
	raw, ok, err := s.cache.Get(ctx, snapshotKey(tenantID, generation, period))
	if err != nil || !ok {
		return nil, false, err
	}
	var rec snapshotRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false, errs.Wrap(err, "decode cached snapshot")
	}
	snap, err := rec.toDomain()
	if err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (s *SnapshotStore) Set(ctx context.Context, tenantID uuid.UUID, generation int64, snap finance.Snapshot) error {
	raw, err := json.Marshal(recordOf(snap))
	if err != nil {
		return errs.Wrap(err, "encode snapshot")
	}
	return s.cache.Set(ctx, snapshotKey(tenantID, generation, snap.Period), raw, s.ttl)
}

type snapshotRecord struct {
	TenantID            uuid.UUID        `json:"tenant_id"`
	PeriodKind          string           `json:"period_kind"`
	PeriodLabel         string           `json:"period_label"`
	PeriodStart         time.Time        `json:"period_start"`
	PeriodEnd           time.Time        `json:"period_end"`
	RevenueCents        int64            `json:"revenue_cents"`
	BookingCount        int              `json:"booking_count"`
	AverageTicketCents  int64            `json:"average_ticket_cents"`
	BookedMinutes       int64            `json:"booked_minutes"`
	AvailableMinutes    int64            `json:"available_minutes"`
	ActiveProfessionals int              `json:"active_professionals"`
	Occupancy           decimal.Decimal  `json:"occupancy"`
	GoalCents           int64            `json:"goal_cents"`
	GoalProgress        *decimal.Decimal `json:"goal_progress,omitempty"`
}

func recordOf(s finance.Snapshot) snapshotRecord {
	return snapshotRecord{
		TenantID:            s.TenantID,
		PeriodKind:          string(s.Period.Kind),
		PeriodLabel:         s.Period.Label,
		PeriodStart:         s.Period.Interval.Start(),
		PeriodEnd:           s.Period.Interval.End(),
		RevenueCents:        s.RevenueCents,
		BookingCount:        s.BookingCount,
		AverageTicketCents:  s.AverageTicketCents,
		BookedMinutes:       s.BookedMinutes,
		AvailableMinutes:    s.AvailableMinutes,
		ActiveProfessionals: s.ActiveProfessionals,
		Occupancy:           s.Occupancy,
		GoalCents:           s.GoalCents,
		GoalProgress:        s.GoalProgress,
	}
}

func (r snapshotRecord) toDomain() (finance.Snapshot, error) {
	iv, err := schedule.NewInterval(r.PeriodStart, r.PeriodEnd)
	if err != nil {
		return finance.Snapshot{}, errs.Wrap(err, "cached snapshot period")
	}
	return finance.Snapshot{
		TenantID:            r.TenantID,
		Period:              finance.Period{Kind: finance.PeriodKind(r.PeriodKind), Label: r.PeriodLabel, Interval: iv},
		RevenueCents:        r.RevenueCents,
		BookingCount:        r.BookingCount,
		AverageTicketCents:  r.AverageTicketCents,
		BookedMinutes:       r.BookedMinutes,
		AvailableMinutes:    r.AvailableMinutes,
		ActiveProfessionals: r.ActiveProfessionals,
		Occupancy:           r.Occupancy,
		GoalCents:           r.GoalCents,
		GoalProgress:        r.GoalProgress,
	}, nil
}
