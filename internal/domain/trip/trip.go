package trip

import "github.com/example/tripplanner/internal/domain/departure"

// Details is everything the trip page shows for one flight.
type Details struct {
	Member               Member
	Flight               Flight
	RecommendedDeparture departure.Recommendation
	LoungesAtDeparture   []Lounge
	LoungesAtArrival     []Lounge
	ExistingBooking      *TaxiBooking
}
