package commission

import (
	"salon-scheduler/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxBasisPoints = 10000

var ErrInvalidRate = errs.Sentinel(errs.ErrValidation, "commission rate must be between 0% and 100%")

// Rate is a commission share in basis points (1% = 100 bps).
type Rate struct {
	bps int32
}

func NewRate(bps int32) (Rate, error) {
	if bps < 0 || bps > maxBasisPoints {
		return Rate{}, ErrInvalidRate
	}
	return Rate{bps: bps}, nil
}

// ParsePercent accepts values like "40" or "12.5".
func ParsePercent(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, ErrInvalidRate
	}
	bps := d.Mul(decimal.NewFromInt(100))
	if !bps.Equal(bps.Truncate(0)) {
		return Rate{}, ErrInvalidRate
	}
	return NewRate(int32(bps.IntPart()))
}

func (r Rate) BasisPoints() int32 {
	return r.bps
}

func (r Rate) Percent() decimal.Decimal {
	return decimal.New(int64(r.bps), -2)
}

// Apply returns the commission on cents, rounded half up to whole cents.
func (r Rate) Apply(cents int64) int64 {
	return decimal.NewFromInt(cents).
		Mul(decimal.New(int64(r.bps), -4)).
		Round(0).
		IntPart()
}

type Source string

const (
	SourceService      Source = "service"
	SourceProfessional Source = "professional"
	SourceTenant       Source = "tenant"
)

// Resolve picks the most specific configured rate.
func Resolve(service, professional *Rate, tenantDefault Rate) (Rate, Source) {
	if service != nil {
		return *service, SourceService
	}
	if professional != nil {
		return *professional, SourceProfessional
	}
	return tenantDefault, SourceTenant
}
