package booking

import (
	"strings"
	"time"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/commission"
	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxNotesLength = 1000

var (
	ErrNoServices       = errs.Sentinel(errs.ErrValidation, "at least one service is required")
	ErrCustomerRequired = errs.Sentinel(errs.ErrValidation, "guest bookings need a name and a phone or email")
	ErrNotesTooLong     = errs.Sentinel(errs.ErrValidation, "notes exceed maximum length")
	ErrInvalidStatus    = errs.Sentinel(errs.ErrValidation, "bookings start as pending or confirmed")
)

// ServiceLine is the immutable snapshot of a service at booking time.
type ServiceLine struct {
	ServiceID  uuid.UUID
	Name       string
	Duration   time.Duration
	PriceCents int64
	// Service-level commission override at booking time, if any.
	Rate *commission.Rate
}

func SnapshotService(s *catalog.Service) ServiceLine {
	return ServiceLine{
		ServiceID:  s.ID(),
		Name:       s.Name(),
		Duration:   s.Duration(),
		PriceCents: s.PriceCents(),
		Rate:       s.CommissionRate(),
	}
}

// Customer is either a registered client or an anonymous guest from the
// public booking link.
type Customer struct {
	ClientID *uuid.UUID
	Name     string
	Phone    string
	Email    string
}

func NewRegisteredCustomer(clientID uuid.UUID, name string) Customer {
	id := clientID
	return Customer{ClientID: &id, Name: strings.TrimSpace(name)}
}

func NewGuestCustomer(name, phone, email string) (Customer, error) {
	c := Customer{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
	if c.Name == "" || (c.Phone == "" && c.Email == "") {
		return Customer{}, ErrCustomerRequired
	}
	return c, nil
}

func (c Customer) IsGuest() bool {
	return c.ClientID == nil
}

type Notes struct {
	value string
}

func NewNotes(value string) (Notes, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxNotesLength {
		return Notes{}, ErrNotesTooLong
	}
	return Notes{value: value}, nil
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
