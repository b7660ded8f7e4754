package trip

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

type FlightStatus string

const (
	FlightUpcoming  FlightStatus = "upcoming"
	FlightBoarding  FlightStatus = "boarding"
	FlightDeparted  FlightStatus = "departed"
	FlightArrived   FlightStatus = "arrived"
	FlightCancelled FlightStatus = "cancelled"
	FlightDelayed   FlightStatus = "delayed"
)

var (
	flightNumberRE = regexp.MustCompile(`^[A-Z0-9]{2}\d{1,4}$`)
	iataRE         = regexp.MustCompile(`^[A-Z]{3}$`)
)

var ErrInvalidFlight = errors.New("invalid flight")

type Flight struct {
	ID               string
	MemberID         string
	FlightNumber     string
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      *time.Time
	Terminal         string
	Gate             string
	Status           FlightStatus
	International    bool
}

func (f Flight) Validate() error {
	if f.MemberID == "" {
		return fmt.Errorf("%w: member_id required", ErrInvalidFlight)
	}
	if !flightNumberRE.MatchString(f.FlightNumber) {
		return fmt.Errorf("%w: flight number %q", ErrInvalidFlight, f.FlightNumber)
	}
	if !iataRE.MatchString(f.DepartureAirport) || !iataRE.MatchString(f.ArrivalAirport) {
		return fmt.Errorf("%w: airports must be IATA codes", ErrInvalidFlight)
	}
	if f.DepartureAirport == f.ArrivalAirport {
		return fmt.Errorf("%w: departure and arrival airport are the same", ErrInvalidFlight)
	}
	if f.DepartureTime.IsZero() {
		return fmt.Errorf("%w: departure_time required", ErrInvalidFlight)
	}
	if f.ArrivalTime != nil && !f.ArrivalTime.After(f.DepartureTime) {
		return fmt.Errorf("%w: arrival must be after departure", ErrInvalidFlight)
	}
	if f.Terminal == "" {
		return fmt.Errorf("%w: terminal required", ErrInvalidFlight)
	}
	switch f.Status {
	case FlightUpcoming, FlightBoarding, FlightDeparted, FlightArrived, FlightCancelled, FlightDelayed:
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidFlight, f.Status)
	}
	return nil
}
