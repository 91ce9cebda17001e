package queue

import (
	"sort"
	"time"

	"salon-scheduler/internal/domain/booking"
	"salon-scheduler/internal/domain/schedule"

	"github.com/google/uuid"
)

type State string

const (
	StateWaiting   State = "waiting"
	StateInService State = "in_service"
	// Start and end passed but nobody marked the booking completed or no-show.
	StateOverdue State = "overdue"
)

// Item is the slice of a booking the queue needs.
type Item struct {
	BookingID    uuid.UUID
	Interval     schedule.Interval
	Status       booking.Status
	CustomerName string
	CreatedAt    time.Time
}

func ItemFromBooking(b *booking.Booking) Item {
	return Item{
		BookingID:    b.ID(),
		Interval:     b.Interval(),
		Status:       b.Status(),
		CustomerName: b.Customer().Name,
		CreatedAt:    b.CreatedAt(),
	}
}

type Entry struct {
	BookingID     uuid.UUID
	Position      int
	Interval      schedule.Interval
	Status        booking.Status
	State         State
	CustomerName  string
	EstimatedWait time.Duration
}

// EstimatedWaitMinutes rounds partial minutes up.
func (e Entry) EstimatedWaitMinutes() int {
	return int((e.EstimatedWait + time.Minute - 1) / time.Minute)
}

type Status struct {
	AsOf      time.Time
	Entries   []Entry
	Waiting   int
	InService int
	Overdue   int
}

// Build orders queued bookings by scheduled start, then creation time, then
// id. The wait of an entry is the sum of the durations ahead of it; an
// entry currently in its service window only counts its remaining time.
func Build(items []Item, asOf time.Time) Status {
	queued := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Status.Queued() {
			queued = append(queued, it)
		}
	}
	sort.SliceStable(queued, func(i, j int) bool {
		a, b := queued[i], queued[j]
		if !a.Interval.Start().Equal(b.Interval.Start()) {
			return a.Interval.Start().Before(b.Interval.Start())
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.BookingID.String() < b.BookingID.String()
	})

	out := Status{AsOf: asOf, Entries: make([]Entry, 0, len(queued))}
	var ahead time.Duration
	for i, it := range queued {
		state := stateOf(it.Interval, asOf)
		out.Entries = append(out.Entries, Entry{
			BookingID:     it.BookingID,
			Position:      i + 1,
			Interval:      it.Interval,
			Status:        it.Status,
			State:         state,
			CustomerName:  it.CustomerName,
			EstimatedWait: ahead,
		})

		switch state {
		case StateInService:
			out.InService++
			ahead += it.Interval.End().Sub(asOf)
		case StateOverdue:
			out.Overdue++
			ahead += it.Interval.Duration()
		default:
			out.Waiting++
			ahead += it.Interval.Duration()
		}
	}
	return out
}

func stateOf(iv schedule.Interval, asOf time.Time) State {
	switch {
	case iv.ContainsInstant(asOf):
		return StateInService
	case !iv.End().After(asOf):
		return StateOverdue
	default:
		return StateWaiting
	}
}
