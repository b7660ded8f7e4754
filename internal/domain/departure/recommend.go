package departure

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// InstantLayout is the wire representation of every instant in a Recommendation.
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

const pastDue = "Past due"

// MaxTotalBufferMinutes is the largest drive+security+preparation total that
// still fits in a time.Duration (about 292 years).
const MaxTotalBufferMinutes = int(math.MaxInt64 / int64(time.Minute))

// Recommendation is the computed pickup plan for one flight.
type Recommendation struct {
	PickupTime               time.Time
	DriveTimeMinutes         int
	ArrivalAtAirportTime     time.Time
	SecurityBufferMinutes    int
	PreparationBufferMinutes int
	FlightDepartureTime      time.Time
	TotalBufferMinutes       int
	Reasoning                string
	TimeUntilPickup          string
}

type recommendationJSON struct {
	PickupTime               string `json:"pickupTime"`
	DriveTimeMinutes         int    `json:"driveTimeMinutes"`
	ArrivalAtAirportTime     string `json:"arrivalAtAirportTime"`
	SecurityBufferMinutes    int    `json:"securityBufferMinutes"`
	PreparationBufferMinutes int    `json:"preparationBufferMinutes"`
	FlightDepartureTime      string `json:"flightDepartureTime"`
	TotalBufferMinutes       int    `json:"totalBufferMinutes"`
	Reasoning                string `json:"reasoning"`
	TimeUntilPickup          string `json:"timeUntilPickup,omitempty"`
}

func (r Recommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal(recommendationJSON{
		PickupTime:               FormatInstant(r.PickupTime),
		DriveTimeMinutes:         r.DriveTimeMinutes,
		ArrivalAtAirportTime:     FormatInstant(r.ArrivalAtAirportTime),
		SecurityBufferMinutes:    r.SecurityBufferMinutes,
		PreparationBufferMinutes: r.PreparationBufferMinutes,
		FlightDepartureTime:      FormatInstant(r.FlightDepartureTime),
		TotalBufferMinutes:       r.TotalBufferMinutes,
		Reasoning:                r.Reasoning,
		TimeUntilPickup:          r.TimeUntilPickup,
	})
}

func (r *Recommendation) UnmarshalJSON(b []byte) error {
	var w recommendationJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	var err error
	out := Recommendation{
		DriveTimeMinutes:         w.DriveTimeMinutes,
		SecurityBufferMinutes:    w.SecurityBufferMinutes,
		PreparationBufferMinutes: w.PreparationBufferMinutes,
		TotalBufferMinutes:       w.TotalBufferMinutes,
		Reasoning:                w.Reasoning,
		TimeUntilPickup:          w.TimeUntilPickup,
	}
	if out.PickupTime, err = ParseInstant(w.PickupTime); err != nil {
		return err
	}
	if out.ArrivalAtAirportTime, err = ParseInstant(w.ArrivalAtAirportTime); err != nil {
		return err
	}
	if out.FlightDepartureTime, err = ParseInstant(w.FlightDepartureTime); err != nil {
		return err
	}
	*r = out
	return nil
}

// Request is the boundary form of a recommendation call. Nil fields take the
// policy defaults: DefaultDriveTimeMinutes and an international flight.
type Request struct {
	FlightDepartureTime string
	DriveTimeMinutes    *int
	International       *bool
}

type Recommender struct {
	policy Policy
	clock  Clock
	loc    *time.Location
}

// New builds a Recommender. A nil clock means the system clock; a nil location
// renders the reasoning time in UTC.
func New(policy Policy, clock Clock, loc *time.Location) *Recommender {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Recommender{policy: policy, clock: clock, loc: loc}
}

func (r *Recommender) Policy() Policy { return r.policy }

// Now reads the recommender's clock.
func (r *Recommender) Now() time.Time { return r.clock.Now() }

func (r *Recommender) RecommendFor(req Request) (Recommendation, error) {
	flightTime, err := ParseInstant(req.FlightDepartureTime)
	if err != nil {
		return Recommendation{}, err
	}
	drive := r.policy.DefaultDriveTimeMinutes
	if req.DriveTimeMinutes != nil {
		drive = *req.DriveTimeMinutes
	}
	international := true
	if req.International != nil {
		international = *req.International
	}
	return r.Recommend(flightTime, drive, international)
}

// Recommend computes when the traveler should be collected so that the drive,
// preparation and security buffers all fit before the flight departs.
func (r *Recommender) Recommend(flightDeparture time.Time, driveTimeMinutes int, international bool) (Recommendation, error) {
	if flightDeparture.IsZero() {
		return Recommendation{}, &InputError{Field: "flight departure time", Reason: "required"}
	}
	if driveTimeMinutes < 0 {
		return Recommendation{}, &InputError{
			Field:  "drive time",
			Value:  fmt.Sprint(driveTimeMinutes),
			Reason: "must not be negative",
		}
	}

	security := r.policy.SecurityBuffer(international)
	prep := r.policy.PreparationBufferMinutes
	// The whole buffer has to fit in a time.Duration.
	if limit := MaxTotalBufferMinutes - security - prep; driveTimeMinutes > limit {
		return Recommendation{}, &InputError{
			Field:  "drive time",
			Value:  fmt.Sprint(driveTimeMinutes),
			Reason: fmt.Sprintf("must be at most %d minutes", limit),
		}
	}
	total := driveTimeMinutes + security + prep

	flightTime := flightDeparture.UTC()
	pickup := flightTime.Add(-minutes(total))
	arrival := pickup.Add(minutes(driveTimeMinutes))

	return Recommendation{
		PickupTime:               pickup,
		DriveTimeMinutes:         driveTimeMinutes,
		ArrivalAtAirportTime:     arrival,
		SecurityBufferMinutes:    security,
		PreparationBufferMinutes: prep,
		FlightDepartureTime:      flightTime,
		TotalBufferMinutes:       total,
		Reasoning:                r.reasoning(pickup, driveTimeMinutes, prep, security),
		TimeUntilPickup:          timeUntil(pickup, r.clock.Now()),
	}, nil
}

func (r *Recommender) reasoning(pickup time.Time, drive, prep, security int) string {
	return fmt.Sprintf("Recommended pickup at %s: %d min drive + %d min preparation + %d min security/check-in buffer",
		FormatTime(pickup, r.loc), drive, prep, security)
}

func timeUntil(t, now time.Time) string {
	if !t.After(now) {
		return pastDue
	}
	return FormatDuration(MinutesBetween(now, t))
}

func minutes(n int) time.Duration { return time.Duration(n) * time.Minute }

// ParseInstant parses an RFC 3339 timestamp that carries an explicit offset or Z.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &InputError{Field: "flight departure time", Reason: "required"}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, &InputError{Field: "flight departure time", Value: s, Reason: "want RFC 3339 with offset"}
	}
	return t.UTC(), nil
}

func FormatInstant(t time.Time) string {
	return t.UTC().Format(InstantLayout)
}
