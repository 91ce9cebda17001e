package response

import (
	"time"

	"salon-scheduler/internal/domain/finance"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type FinanceSnapshotResponse struct {
	TenantID            uuid.UUID `json:"tenantId"`
	Period              string    `json:"period" copier:"-"`
	Label               string    `json:"label" copier:"-"`
	PeriodStart         time.Time `json:"periodStart" copier:"-"`
	PeriodEnd           time.Time `json:"periodEnd" copier:"-"`
	RevenueCents        int64     `json:"revenueCents"`
	BookingCount        int       `json:"bookingCount"`
	AverageTicketCents  int64     `json:"averageTicketCents"`
	BookedMinutes       int64     `json:"bookedMinutes"`
	AvailableMinutes    int64     `json:"availableMinutes"`
	ActiveProfessionals int       `json:"activeProfessionals"`
	Occupancy           string    `json:"occupancy"`
	GoalCents           int64     `json:"goalCents"`
	GoalProgress        *string   `json:"goalProgress,omitempty" copier:"-"`
	Cached              bool      `json:"cached" copier:"-"`
}

// decimalOptions renders decimals as fixed-point strings so clients never
// round through float64.
var decimalOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).StringFixed(4), nil
			},
		},
	},
}

func FromFinanceSnapshot(s finance.Snapshot, cached bool) (*FinanceSnapshotResponse, error) {
	var out FinanceSnapshotResponse
	if err := copier.CopyWithOption(&out, &s, decimalOptions); err != nil {
		return nil, err
	}
	out.Period = string(s.Period.Kind)
	out.Label = s.Period.Label
	out.PeriodStart = s.Period.Interval.Start()
	out.PeriodEnd = s.Period.Interval.End()
	if s.GoalProgress != nil {
		p := s.GoalProgress.StringFixed(2)
		out.GoalProgress = &p
	}
	out.Cached = cached
	return &out, nil
}
