package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending        BookingStatus = "pending"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingDriverAssigned BookingStatus = "driver_assigned"
	BookingInProgress     BookingStatus = "in_progress"
	BookingCompleted      BookingStatus = "completed"
	BookingCancelled      BookingStatus = "cancelled"
)

var (
	ErrInvalidBooking    = errors.New("invalid booking")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:        {BookingConfirmed, BookingCancelled},
	BookingConfirmed:      {BookingDriverAssigned, BookingCancelled},
	BookingDriverAssigned: {BookingInProgress, BookingCancelled},
	BookingInProgress:     {BookingCompleted},
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type TaxiBooking struct {
	ID               string
	MemberID         string
	FlightID         string
	PickupAddress    string
	DropoffAddress   string
	PickupTime       time.Time
	EstimatedArrival time.Time
	Fare             Fare
	Status           BookingStatus
	LastError        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b TaxiBooking) Validate() error {
	if b.MemberID == "" {
		return fmt.Errorf("%w: member_id required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.PickupAddress) == "" {
		return fmt.Errorf("%w: pickup address required", ErrInvalidBooking)
	}
	if strings.TrimSpace(b.DropoffAddress) == "" {
		return fmt.Errorf("%w: dropoff address required", ErrInvalidBooking)
	}
	if b.PickupTime.IsZero() {
		return fmt.Errorf("%w: pickup time required", ErrInvalidBooking)
	}
	if b.EstimatedArrival.Before(b.PickupTime) {
		return fmt.Errorf("%w: estimated arrival before pickup", ErrInvalidBooking)
	}
	return nil
}

// Transition moves the booking to status `to`, or returns ErrInvalidTransition.
func (b *TaxiBooking) Transition(to BookingStatus) error {
	if !CanTransition(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
	b.Status = to
	return nil
}

func (b TaxiBooking) Active() bool {
	return b.Status != BookingCancelled && b.Status != BookingCompleted
}
