package usecases

import (
	"context"

	"github.com/example/tripplanner/internal/domain/trip"
)

// Stores are satisfied by the postgres repos. Lookups that find nothing return
// an error wrapping internaltypes.ErrNotFound.

type MemberStore interface {
	Create(ctx context.Context, m trip.Member) error
	GetByUsername(ctx context.Context, username string) (trip.Member, error)
	GetByID(ctx context.Context, id string) (trip.Member, error)
}

type FlightStore interface {
	GetForMember(ctx context.Context, id, memberID string) (trip.Flight, error)
	ListByMember(ctx context.Context, memberID string) ([]trip.Flight, error)
}

type LoungeStore interface {
	ListByAirport(ctx context.Context, airport string) ([]trip.Lounge, error)
}

type BookingStore interface {
	Create(ctx context.Context, b trip.TaxiBooking) error
	GetForMember(ctx context.Context, id, memberID string) (trip.TaxiBooking, error)
	ListByMember(ctx context.Context, memberID string) ([]trip.TaxiBooking, error)
	LatestForFlight(ctx context.Context, memberID, flightID string) (*trip.TaxiBooking, error)
	SetStatus(ctx context.Context, id string, from, to trip.BookingStatus, lastErr *string) error
}

