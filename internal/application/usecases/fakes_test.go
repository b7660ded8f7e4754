package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
)

type memStore struct {
	mu       sync.Mutex
	members  map[string]trip.Member
	flights  map[string]trip.Flight
	lounges  []trip.Lounge
	bookings map[string]trip.TaxiBooking
}

func newMemStore() *memStore {
	return &memStore{
		members:  map[string]trip.Member{},
		flights:  map[string]trip.Flight{},
		bookings: map[string]trip.TaxiBooking{},
	}
}

type memMembers struct{ *memStore }
type memFlights struct{ *memStore }
type memLounges struct{ *memStore }
type memBookings struct{ *memStore }

func (s memMembers) Create(_ context.Context, m trip.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
	return nil
}

func (s memMembers) GetByUsername(_ context.Context, username string) (trip.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.Username == username {
			return m, nil
		}
	}
	return trip.Member{}, internaltypes.ErrNotFound
}

func (s memMembers) GetByID(_ context.Context, id string) (trip.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return trip.Member{}, internaltypes.ErrNotFound
	}
	return m, nil
}

func (s memFlights) GetForMember(_ context.Context, id, memberID string) (trip.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[id]
	if !ok || f.MemberID != memberID {
		return trip.Flight{}, internaltypes.ErrNotFound
	}
	return f, nil
}

func (s memFlights) ListByMember(_ context.Context, memberID string) ([]trip.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []trip.Flight
	for _, f := range s.flights {
		if f.MemberID == memberID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

func (s memLounges) ListByAirport(_ context.Context, airport string) ([]trip.Lounge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []trip.Lounge
	for _, l := range s.lounges {
		if l.AirportCode == airport {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s memBookings) Create(_ context.Context, b trip.TaxiBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
	return nil
}

func (s memBookings) GetForMember(_ context.Context, id, memberID string) (trip.TaxiBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.MemberID != memberID {
		return trip.TaxiBooking{}, internaltypes.ErrNotFound
	}
	return b, nil
}

func (s memBookings) ListByMember(_ context.Context, memberID string) ([]trip.TaxiBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []trip.TaxiBooking
	for _, b := range s.bookings {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memBookings) LatestForFlight(ctx context.Context, memberID, flightID string) (*trip.TaxiBooking, error) {
	all, _ := s.ListByMember(ctx, memberID)
	for _, b := range all {
		if b.FlightID == flightID && b.Status != trip.BookingCancelled {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s memBookings) SetStatus(_ context.Context, id string, from, to trip.BookingStatus, lastErr *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return internaltypes.ErrNotFound
	}
	b.Status = to
	b.LastError = lastErr
	b.UpdatedAt = time.Now().UTC()
	s.bookings[id] = b
	return nil
}
