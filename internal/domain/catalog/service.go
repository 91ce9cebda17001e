package catalog

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errs.Sentinel(errs.ErrValidation, "service name is required")
	ErrInvalidDuration = errs.Sentinel(errs.ErrValidation, "service duration must be a positive number of minutes")
	ErrNegativePrice   = errs.Sentinel(errs.ErrValidation, "service price cannot be negative")
	ErrInactive        = errs.Sentinel(errs.ErrValidation, "service is not offered")
)

// Service is a bookable offering. Its duration and price are copied onto
// each booking so later edits never rewrite history.
type Service struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	name       string
	duration   time.Duration
	priceCents int64
	rate       *commission.Rate
	active     bool
}

func NewService(tenantID uuid.UUID, name string, duration time.Duration, priceCents int64, rate *commission.Rate) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if duration <= 0 || duration%time.Minute != 0 {
		return nil, ErrInvalidDuration
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Service{
		id:         uuid.New(),
		tenantID:   tenantID,
		name:       name,
		duration:   duration,
		priceCents: priceCents,
		rate:       rate,
		active:     true,
	}, nil
}

func ReconstructService(id, tenantID uuid.UUID, name string, duration time.Duration, priceCents int64, rate *commission.Rate, active bool) *Service {
	return &Service{
		id:         id,
		tenantID:   tenantID,
		name:       name,
		duration:   duration,
		priceCents: priceCents,
		rate:       rate,
		active:     active,
	}
}

func (s *Service) ID() uuid.UUID                    { return s.id }
func (s *Service) TenantID() uuid.UUID              { return s.tenantID }
func (s *Service) Name() string                     { return s.name }
func (s *Service) Duration() time.Duration          { return s.duration }
func (s *Service) PriceCents() int64                { return s.priceCents }
func (s *Service) CommissionRate() *commission.Rate { return s.rate }
func (s *Service) IsActive() bool                   { return s.active }
