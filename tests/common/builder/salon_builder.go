//go:build unit || e2e

package builder

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/professional"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/tenant"
	"salon-scheduler/internal/infra/memstore"
	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Salon is a seeded in-memory tenant: open Monday to Saturday 09:00-18:00
// UTC, one professional, a 30 minute haircut and a 15 minute beard trim.
type Salon struct {
	Store        *memstore.Store
	UoW          *memstore.UnitOfWork
	Tenant       *tenant.Tenant
	Professional *professional.Professional
	Haircut      *catalog.Service
	BeardTrim    *catalog.Service
}

func WeekdayHours(t *testing.T, tz string) schedule.OperatingHours {
	t.Helper()
	open, err := schedule.NewDayRange(9*60, 18*60)
	require.NoError(t, err)
	weekly := map[time.Weekday][]schedule.DayRange{}
	for d := time.Monday; d <= time.Saturday; d++ {
		weekly[d] = []schedule.DayRange{open}
	}
	hours, err := schedule.NewOperatingHours(tz, weekly)
	require.NoError(t, err)
	return hours
}

func Rate(t *testing.T, bps int32) commission.Rate {
	t.Helper()
	r, err := commission.NewRate(bps)
	require.NoError(t, err)
	return r
}

func NewSalon(t *testing.T) *Salon {
	t.Helper()
	store := memstore.NewStore()
	s := &Salon{Store: store, UoW: memstore.NewUnitOfWork(store)}
	s.Tenant = s.AddTenant(t, "Studio Bela")
	s.Professional = s.AddProfessional(t, s.Tenant.ID(), "Ana", nil)

	var err error
	s.Haircut, err = catalog.NewService(s.Tenant.ID(), "Haircut", 30*time.Minute, 3000, nil)
	require.NoError(t, err)
	beardRate := Rate(t, 5000)
	s.BeardTrim, err = catalog.NewService(s.Tenant.ID(), "Beard trim", 15*time.Minute, 1500, &beardRate)
	require.NoError(t, err)
	store.PutService(s.Haircut)
	store.PutService(s.BeardTrim)
	return s
}

func (s *Salon) AddTenant(t *testing.T, name string) *tenant.Tenant {
	t.Helper()
	slug := "salon-" + uuid.NewString()[:8]
	tn, err := tenant.NewTenant(name, slug, WeekdayHours(t, "UTC"), Rate(t, 4000), 100_000, BaseDay)
	require.NoError(t, err)
	s.Store.PutTenant(tn)
	return tn
}

func (s *Salon) AddProfessional(t *testing.T, tenantID uuid.UUID, name string, rate *commission.Rate) *professional.Professional {
	t.Helper()
	p, err := professional.NewProfessional(tenantID, name, rate)
	require.NoError(t, err)
	s.Store.PutProfessional(p)
	return p
}

// HaircutAt is a 30 minute booking request starting at h:m on BaseDay.
func (s *Salon) HaircutAt(h, m int) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		TenantID:       s.Tenant.ID(),
		ProfessionalID: s.Professional.ID(),
		ServiceIDs:     []uuid.UUID{s.Haircut.ID()},
		Start:          At(h, m),
		Customer:       commands.CustomerInput{Name: "Maria Silva", Phone: "+55 11 99999-0000"},
	}
}

// FullServiceAt books a haircut and a beard trim, 45 minutes in total.
func (s *Salon) FullServiceAt(h, m int) commands.CreateBookingInput {
	in := s.HaircutAt(h, m)
	in.ServiceIDs = []uuid.UUID{s.Haircut.ID(), s.BeardTrim.ID()}
	return in
}
