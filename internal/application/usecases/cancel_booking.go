package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
)

type CancelBooking struct {
	Bookings BookingStore
}

func (u CancelBooking) Execute(ctx context.Context, memberID, bookingID string) (trip.TaxiBooking, error) {
	b, err := u.Bookings.GetForMember(ctx, bookingID, memberID)
	if err != nil {
		return trip.TaxiBooking{}, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	from := b.Status
	if err := b.Transition(trip.BookingCancelled); err != nil {
		return trip.TaxiBooking{}, err
	}
	if err := u.Bookings.SetStatus(ctx, b.ID, from, b.Status, nil); err != nil {
		if errors.Is(err, internaltypes.ErrNotFound) {
			// Status moved underneath us, e.g. the dispatcher confirmed it.
			return trip.TaxiBooking{}, fmt.Errorf("booking %s changed concurrently: %w", b.ID, internaltypes.ErrConflict)
		}
		return trip.TaxiBooking{}, err
	}
	return b, nil
}
