//go:build unit

package payout

import (
	"testing"
	"time"

	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageIDSurvivesRetriedPayout(t *testing.T) {
	march, err := schedule.NewInterval(
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	april, err := schedule.NewInterval(march.End(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	professionalID := uuid.New()
	payout := func(period schedule.Interval) *commission.Payout {
		return &commission.Payout{
			ID:             uuid.New(),
			ProfessionalID: professionalID,
			Period:         period,
			AmountCents:    1950,
			CreatedAt:      time.Now(),
		}
	}

	first, retried := payout(march), payout(march)
	require.NotEqual(t, first.ID, retried.ID)
	assert.Equal(t, messageID(first), messageID(retried))

	assert.NotEqual(t, messageID(first), messageID(payout(april)))

	other := payout(march)
	other.ProfessionalID = uuid.New()
	assert.NotEqual(t, messageID(first), messageID(other))
}
