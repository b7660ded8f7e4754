package usecases

import (
	"context"
	"fmt"

	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/telemetry"
)

// PlanTrip assembles the trip view for one of a member's flights.
type PlanTrip struct {
	Members     MemberStore
	Flights     FlightStore
	Lounges     LoungeStore
	Bookings    BookingStore
	Recommender *departure.Recommender
}

// Execute uses driveMinutes when given, otherwise the policy default drive time.
func (u PlanTrip) Execute(ctx context.Context, memberID, flightID string, driveMinutes *int) (trip.Details, error) {
	m, err := u.Members.GetByID(ctx, memberID)
	if err != nil {
		return trip.Details{}, fmt.Errorf("load member: %w", err)
	}
	f, err := u.Flights.GetForMember(ctx, flightID, memberID)
	if err != nil {
		return trip.Details{}, fmt.Errorf("load flight %s: %w", flightID, err)
	}

	drive := u.Recommender.Policy().DefaultDriveTimeMinutes
	if driveMinutes != nil {
		drive = *driveMinutes
	}
	rec, err := u.Recommender.Recommend(f.DepartureTime, drive, f.International)
	if err != nil {
		telemetry.RecommendationErrorsTotal.Inc()
		return trip.Details{}, err
	}
	telemetry.RecommendationsTotal.WithLabelValues(telemetry.TripType(f.International)).Inc()

	dep, err := u.Lounges.ListByAirport(ctx, f.DepartureAirport)
	if err != nil {
		return trip.Details{}, fmt.Errorf("lounges at %s: %w", f.DepartureAirport, err)
	}
	arr, err := u.Lounges.ListByAirport(ctx, f.ArrivalAirport)
	if err != nil {
		return trip.Details{}, fmt.Errorf("lounges at %s: %w", f.ArrivalAirport, err)
	}
	existing, err := u.Bookings.LatestForFlight(ctx, memberID, flightID)
	if err != nil {
		return trip.Details{}, fmt.Errorf("existing booking: %w", err)
	}

	return trip.Details{
		Member:               m,
		Flight:               f,
		RecommendedDeparture: rec,
		LoungesAtDeparture:   trip.SelectLounges(dep, f.DepartureAirport, f.Terminal, m.Tier),
		// Arrival terminal is unknown, so no terminal preference there.
		LoungesAtArrival: trip.SelectLounges(arr, f.ArrivalAirport, "", m.Tier),
		ExistingBooking:  existing,
	}, nil
}
