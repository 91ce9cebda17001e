package tenant

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errs.Sentinel(errs.ErrValidation, "tenant name is required")
	ErrInvalidSlug  = errs.Sentinel(errs.ErrValidation, "slug must be lowercase letters, digits and dashes")
	ErrNegativeGoal = errs.Sentinel(errs.ErrValidation, "monthly goal cannot be negative")
	ErrInactive     = errs.Sentinel(errs.ErrNotFound, "tenant is disabled")
)

// Tenant is a business account and the unit of data isolation. Tenants are
// soft-disabled, never deleted.
type Tenant struct {
	id                uuid.UUID
	name              string
	slug              string
	hours             schedule.OperatingHours
	defaultRate       commission.Rate
	monthlyGoalCents  int64
	active            bool
	bookingLinkDigest string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewTenant(name, slug string, hours schedule.OperatingHours, defaultRate commission.Rate, monthlyGoalCents int64, now time.Time) (*Tenant, error) {
	t := &Tenant{
		id:          uuid.New(),
		hours:       hours,
		defaultRate: defaultRate,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}
	if err := t.rename(name, slug); err != nil {
		return nil, err
	}
	if monthlyGoalCents < 0 {
		return nil, ErrNegativeGoal
	}
	t.monthlyGoalCents = monthlyGoalCents
	return t, nil
}

func ReconstructTenant(
	id uuid.UUID,
	name, slug string,
	hours schedule.OperatingHours,
	defaultRate commission.Rate,
	monthlyGoalCents int64,
	active bool,
	bookingLinkDigest string,
	createdAt, updatedAt time.Time,
) *Tenant {
	return &Tenant{
		id:                id,
		name:              name,
		slug:              slug,
		hours:             hours,
		defaultRate:       defaultRate,
		monthlyGoalCents:  monthlyGoalCents,
		active:            active,
		bookingLinkDigest: bookingLinkDigest,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (t *Tenant) rename(name, slug string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !validSlug(slug) {
		return ErrInvalidSlug
	}
	t.name = name
	t.slug = slug
	return nil
}

func validSlug(s string) bool {
	if s == "" || len(s) > 64 || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// Settings holds the mutable subset; nil fields keep the current value.
type Settings struct {
	Name             *string
	Hours            *schedule.OperatingHours
	DefaultRate      *commission.Rate
	MonthlyGoalCents *int64
	Active           *bool
}

func (t *Tenant) Apply(s Settings, now time.Time) error {
	if s.Name != nil {
		if err := t.rename(*s.Name, t.slug); err != nil {
			return err
		}
	}
	if s.MonthlyGoalCents != nil {
		if *s.MonthlyGoalCents < 0 {
			return ErrNegativeGoal
		}
		t.monthlyGoalCents = *s.MonthlyGoalCents
	}
	t.hours = patch.Coalesce(s.Hours, t.hours)
	t.defaultRate = patch.Coalesce(s.DefaultRate, t.defaultRate)
	t.active = patch.Coalesce(s.Active, t.active)
	t.updatedAt = now
	return nil
}

// RotateBookingLink stores the digest of a new public booking token. The
// plain token is returned once and never persisted.
func (t *Tenant) RotateBookingLink(token string, now time.Time) {
	t.bookingLinkDigest = DigestBookingToken(token)
	t.updatedAt = now
}

func DigestBookingToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (t *Tenant) ID() uuid.UUID                  { return t.id }
func (t *Tenant) Name() string                   { return t.name }
func (t *Tenant) Slug() string                   { return t.slug }
func (t *Tenant) Hours() schedule.OperatingHours { return t.hours }
func (t *Tenant) DefaultRate() commission.Rate   { return t.defaultRate }
func (t *Tenant) MonthlyGoalCents() int64        { return t.monthlyGoalCents }
func (t *Tenant) IsActive() bool                 { return t.active }
func (t *Tenant) BookingLinkDigest() string      { return t.bookingLinkDigest }
func (t *Tenant) CreatedAt() time.Time           { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time           { return t.updatedAt }
