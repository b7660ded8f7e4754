package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/tripplanner/internal/domain/departure"
	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
)

// Drivers are announced this long before the booked pickup.
const driverArrivalLead = 5 * time.Minute

type BookTaxiRequest struct {
	MemberID       string
	FlightID       string
	PickupAddress  string
	DropoffAddress string
	// PickupTime overrides the recommended pickup.
	PickupTime       *time.Time
	DriveTimeMinutes *int
}

type BookTaxiResponse struct {
	Success             bool      `json:"success"`
	BookingID           string    `json:"bookingId"`
	EstimatedFare       int64     `json:"estimatedFareMinor"`
	DiscountApplied     int64     `json:"discountAppliedMinor"`
	Currency            string    `json:"currency"`
	EstimatedPickupTime time.Time `json:"estimatedPickupTime"`
	Message             string    `json:"message"`
}

type BookTaxi struct {
	Members     MemberStore
	Flights     FlightStore
	Bookings    BookingStore
	Recommender *departure.Recommender
	Tariff      trip.Tariff
	// Location renders the driver arrival time in the confirmation message.
	Location *time.Location
}

func (u BookTaxi) Execute(ctx context.Context, req BookTaxiRequest) (BookTaxiResponse, error) {
	if strings.TrimSpace(req.PickupAddress) == "" {
		return BookTaxiResponse{}, fmt.Errorf("%w: pickup address required", trip.ErrInvalidBooking)
	}
	m, err := u.Members.GetByID(ctx, req.MemberID)
	if err != nil {
		return BookTaxiResponse{}, fmt.Errorf("load member: %w", err)
	}
	f, err := u.Flights.GetForMember(ctx, req.FlightID, req.MemberID)
	if err != nil {
		return BookTaxiResponse{}, fmt.Errorf("load flight %s: %w", req.FlightID, err)
	}

	existing, err := u.Bookings.LatestForFlight(ctx, m.ID, f.ID)
	if err != nil {
		return BookTaxiResponse{}, fmt.Errorf("existing booking: %w", err)
	}
	if existing != nil && existing.Active() {
		return BookTaxiResponse{}, fmt.Errorf("flight %s already has booking %s (%s): %w",
			f.ID, existing.ID, existing.Status, internaltypes.ErrConflict)
	}

	drive := u.Recommender.Policy().DefaultDriveTimeMinutes
	if req.DriveTimeMinutes != nil {
		drive = *req.DriveTimeMinutes
	}
	rec, err := u.Recommender.Recommend(f.DepartureTime, drive, f.International)
	if err != nil {
		return BookTaxiResponse{}, err
	}

	now := u.Recommender.Now().UTC()
	pickup := rec.PickupTime
	if req.PickupTime != nil {
		if departure.IsPast(*req.PickupTime, now) {
			return BookTaxiResponse{}, fmt.Errorf("%w: pickup time is in the past", trip.ErrInvalidBooking)
		}
		pickup = req.PickupTime.UTC()
	}
	dropoff := strings.TrimSpace(req.DropoffAddress)
	if dropoff == "" {
		dropoff = fmt.Sprintf("%s Terminal %s", f.DepartureAirport, f.Terminal)
	}

	b := trip.TaxiBooking{
		ID:               "bkg_" + uuid.NewString(),
		MemberID:         m.ID,
		FlightID:         f.ID,
		PickupAddress:    strings.TrimSpace(req.PickupAddress),
		DropoffAddress:   dropoff,
		PickupTime:       pickup,
		EstimatedArrival: pickup.Add(time.Duration(drive) * time.Minute),
		Fare:             u.Tariff.QuoteFor(m.Tier, drive),
		Status:           trip.BookingPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := b.Validate(); err != nil {
		return BookTaxiResponse{}, err
	}
	if err := u.Bookings.Create(ctx, b); err != nil {
		return BookTaxiResponse{}, fmt.Errorf("store booking: %w", err)
	}

	return BookTaxiResponse{
		Success:             true,
		BookingID:           b.ID,
		EstimatedFare:       b.Fare.NetMinor,
		DiscountApplied:     b.Fare.DiscountMinor,
		Currency:            b.Fare.Currency,
		EstimatedPickupTime: b.PickupTime,
		Message: fmt.Sprintf("Taxi booked successfully! Your driver will arrive at %s.",
			departure.FormatTime(pickup.Add(-driverArrivalLead), u.Location)),
	}, nil
}
