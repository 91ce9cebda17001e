package professional

import (
	"strings"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errs.Sentinel(errs.ErrValidation, "professional name is required")
	ErrInactive  = errs.Sentinel(errs.ErrValidation, "professional is not active")
)

// Professional belongs to exactly one tenant. Inactive professionals keep
// their history but accept no new bookings.
type Professional struct {
	id       uuid.UUID
	tenantID uuid.UUID
	name     string
	active   bool
	rate     *commission.Rate
}

func NewProfessional(tenantID uuid.UUID, name string, rate *commission.Rate) (*Professional, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Professional{id: uuid.New(), tenantID: tenantID, name: name, active: true, rate: rate}, nil
}

func ReconstructProfessional(id, tenantID uuid.UUID, name string, active bool, rate *commission.Rate) *Professional {
	return &Professional{id: id, tenantID: tenantID, name: name, active: active, rate: rate}
}

func (p *Professional) EnsureBookable() error {
	if !p.active {
		return ErrInactive
	}
	return nil
}

func (p *Professional) ID() uuid.UUID                    { return p.id }
func (p *Professional) TenantID() uuid.UUID              { return p.tenantID }
func (p *Professional) Name() string                     { return p.name }
func (p *Professional) IsActive() bool                   { return p.active }
func (p *Professional) CommissionRate() *commission.Rate { return p.rate }
