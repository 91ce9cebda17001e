package response

import (
	"time"

	"salon-scheduler/internal/domain/queue"

	"github.com/google/uuid"
)

type QueueEntryResponse struct {
	BookingID            uuid.UUID `json:"bookingId"`
	Position             int       `json:"position"`
	Start                time.Time `json:"start"`
	End                  time.Time `json:"end"`
	Status               string    `json:"status"`
	State                string    `json:"state"`
	CustomerName         string    `json:"customerName,omitempty"`
	EstimatedWaitMinutes int       `json:"estimatedWaitMinutes"`
}

type QueueStatusResponse struct {
	AsOf      time.Time            `json:"asOf"`
	Waiting   int                  `json:"waiting"`
	InService int                  `json:"inService"`
	Overdue   int                  `json:"overdue"`
	Entries   []QueueEntryResponse `json:"entries"`
}

// FromQueueStatus maps a queue snapshot. Public callers never see customer
// names.
func FromQueueStatus(s queue.Status, public bool) *QueueStatusResponse {
	entries := make([]QueueEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = QueueEntryResponse{
			BookingID:            e.BookingID,
			Position:             e.Position,
			Start:                e.Interval.Start(),
			End:                  e.Interval.End(),
			Status:               e.Status.String(),
			State:                string(e.State),
			EstimatedWaitMinutes: e.EstimatedWaitMinutes(),
		}
		if !public {
			entries[i].CustomerName = e.CustomerName
		}
	}
	return &QueueStatusResponse{
		AsOf:      s.AsOf,
		Waiting:   s.Waiting,
		InService: s.InService,
		Overdue:   s.Overdue,
		Entries:   entries,
	}
}
