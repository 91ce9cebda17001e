package response

import (
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CommissionLineResponse struct {
	BookingID    uuid.UUID `json:"bookingId"`
	BookingStart time.Time `json:"bookingStart"`
	Position     int       `json:"position"`
	ServiceID    uuid.UUID `json:"serviceId"`
	ServiceName  string    `json:"serviceName"`
	PriceCents   int64     `json:"priceCents"`
	Rate         int32     `json:"rateBps"`
	Source       string    `json:"source"`
	AmountCents  int64     `json:"amountCents"`
}

type CommissionStatementResponse struct {
	TenantID       uuid.UUID                `json:"tenantId"`
	ProfessionalID uuid.UUID                `json:"professionalId"`
	PeriodStart    time.Time                `json:"periodStart" copier:"-"`
	PeriodEnd      time.Time                `json:"periodEnd" copier:"-"`
	Lines          []CommissionLineResponse `json:"lines"`
	RevenueCents   int64                    `json:"revenueCents"`
	TotalCents     int64                    `json:"totalCents"`
}

type PayoutResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`
	AmountCents    int64     `json:"amountCents"`
	LineCount      int       `json:"lineCount"`
	CreatedAt      time.Time `json:"createdAt"`
	Created        bool      `json:"created"`
}

type CommissionSummaryResponse struct {
	ProfessionalName string                       `json:"professionalName"`
	Statement        *CommissionStatementResponse `json:"statement"`
	Payout           *PayoutResponse              `json:"payout,omitempty"`
	DueCents         int64                        `json:"dueCents"`
}

var rateOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: commission.Rate{},
			DstType: int32(0),
			Fn: func(src any) (any, error) {
				return src.(commission.Rate).BasisPoints(), nil
			},
		},
	},
}

func FromStatement(st commission.Statement) (*CommissionStatementResponse, error) {
	out := CommissionStatementResponse{Lines: []CommissionLineResponse{}}
	if err := copier.CopyWithOption(&out, &st, rateOptions); err != nil {
		return nil, err
	}
	out.PeriodStart = st.Period.Start()
	out.PeriodEnd = st.Period.End()
	return &out, nil
}

func FromPayout(p *commission.Payout, created bool) *PayoutResponse {
	if p == nil {
		return nil
	}
	return &PayoutResponse{
		ID:             p.ID,
		ProfessionalID: p.ProfessionalID,
		PeriodStart:    p.Period.Start(),
		PeriodEnd:      p.Period.End(),
		AmountCents:    p.AmountCents,
		LineCount:      p.LineCount,
		CreatedAt:      p.CreatedAt,
		Created:        created,
	}
}

func FromPayoutResult(r *commands.PayoutResult) *PayoutResponse {
	return FromPayout(r.Payout, r.Created)
}

func FromCommissionOverview(summaries []queries.CommissionSummary) ([]*CommissionSummaryResponse, error) {
	out := make([]*CommissionSummaryResponse, len(summaries))
	for i, s := range summaries {
		st, err := FromStatement(s.Statement)
		if err != nil {
			return nil, err
		}
		out[i] = &CommissionSummaryResponse{
			ProfessionalName: s.ProfessionalName,
			Statement:        st,
			Payout:           FromPayout(s.Payout, false),
			DueCents:         s.DueCents,
		}
	}
	return out, nil
}
