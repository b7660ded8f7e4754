package web

import (
	"time"

	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
)

type memberView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Tier      string `json:"tier"`
}

func toMemberView(m trip.Member) memberView {
	return memberView{ID: m.ID, Username: m.Username, FirstName: m.FirstName, LastName: m.LastName, Tier: string(m.Tier)}
}

type flightView struct {
	ID               string     `json:"id"`
	FlightNumber     string     `json:"flightNumber"`
	Airline          string     `json:"airline"`
	DepartureAirport string     `json:"departureAirport"`
	ArrivalAirport   string     `json:"arrivalAirport"`
	DepartureTime    time.Time  `json:"departureTime"`
	ArrivalTime      *time.Time `json:"arrivalTime,omitempty"`
	Terminal         string     `json:"terminal"`
	Gate             string     `json:"gate,omitempty"`
	Status           string     `json:"status"`
	International    bool       `json:"international"`
}

func toFlightView(f trip.Flight) flightView {
	return flightView{
		ID: f.ID, FlightNumber: f.FlightNumber, Airline: f.Airline,
		DepartureAirport: f.DepartureAirport, ArrivalAirport: f.ArrivalAirport,
		DepartureTime: f.DepartureTime, ArrivalTime: f.ArrivalTime,
		Terminal: f.Terminal, Gate: f.Gate, Status: string(f.Status), International: f.International,
	}
}

type loungeView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AirportCode  string   `json:"airportCode"`
	Terminal     string   `json:"terminal"`
	Amenities    []string `json:"amenities"`
	OpeningHours string   `json:"openingHours"`
	Description  string   `json:"description,omitempty"`
	AccessType   string   `json:"accessType"`
}

func toLoungeViews(ls []trip.Lounge) []loungeView {
	out := make([]loungeView, 0, len(ls))
	for _, l := range ls {
		out = append(out, loungeView{
			ID: l.ID, Name: l.Name, AirportCode: l.AirportCode, Terminal: l.Terminal,
			Amenities: l.Amenities, OpeningHours: l.OpeningHours, Description: l.Description,
			AccessType: string(l.AccessType),
		})
	}
	return out
}

type bookingView struct {
	ID                   string    `json:"bookingId"`
	FlightID             string    `json:"flightId,omitempty"`
	PickupAddress        string    `json:"pickupAddress"`
	DropoffAddress       string    `json:"dropoffAddress"`
	PickupTime           time.Time `json:"pickupTime"`
	PickupRelative       string    `json:"pickupRelative"`
	EstimatedArrival     time.Time `json:"estimatedArrival"`
	EstimatedFareMinor   int64     `json:"estimatedFareMinor"`
	DiscountAppliedMinor int64     `json:"discountAppliedMinor"`
	Currency             string    `json:"currency"`
	FareDisplay          string    `json:"fareDisplay"`
	Status               string    `json:"status"`
	LastError            *string   `json:"lastError,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Amounts are minor units, matching the booking response.
func toBookingView(b trip.TaxiBooking, now time.Time) bookingView {
	return bookingView{
		ID: b.ID, FlightID: b.FlightID, PickupAddress: b.PickupAddress, DropoffAddress: b.DropoffAddress,
		PickupTime: b.PickupTime, PickupRelative: departure.RelativeTime(b.PickupTime, now),
		EstimatedArrival:     b.EstimatedArrival,
		EstimatedFareMinor:   b.Fare.NetMinor,
		DiscountAppliedMinor: b.Fare.DiscountMinor,
		Currency:             b.Fare.Currency,
		FareDisplay:          departure.FormatCurrency(b.Fare.NetMinor, b.Fare.Currency),
		Status:               string(b.Status), LastError: b.LastError, CreatedAt: b.CreatedAt,
	}
}

type tripView struct {
	Member               memberView               `json:"member"`
	Flight               flightView               `json:"flight"`
	RecommendedDeparture departure.Recommendation `json:"recommendedDeparture"`
	LoungesAtDeparture   []loungeView             `json:"loungesAtDeparture"`
	LoungesAtArrival     []loungeView             `json:"loungesAtArrival"`
	ExistingBooking      *bookingView             `json:"existingBooking,omitempty"`
}

func toTripView(d trip.Details, now time.Time) tripView {
	v := tripView{
		Member:               toMemberView(d.Member),
		Flight:               toFlightView(d.Flight),
		RecommendedDeparture: d.RecommendedDeparture,
		LoungesAtDeparture:   toLoungeViews(d.LoungesAtDeparture),
		LoungesAtArrival:     toLoungeViews(d.LoungesAtArrival),
	}
	if d.ExistingBooking != nil {
		bv := toBookingView(*d.ExistingBooking, now)
		v.ExistingBooking = &bv
	}
	return v
}
