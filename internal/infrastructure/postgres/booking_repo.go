package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tripplanner/internal/domain/trip"
)

// Sealer encrypts pickup addresses at rest.
type Sealer interface {
	EncryptToString(plaintext string) (string, error)
	DecryptString(ciphertext string) (string, error)
}

const bookingColumns = `id, member_id, flight_id, pickup_address, dropoff_address, pickup_time, estimated_arrival,
fare_gross_minor, fare_discount_minor, fare_net_minor, currency, status, last_error, created_at, updated_at`

type BookingRepo struct {
	db   *DB
	seal Sealer
}

func NewBookingRepo(d *DB, seal Sealer) *BookingRepo { return &BookingRepo{db: d, seal: seal} }

func (r *BookingRepo) Create(ctx context.Context, b trip.TaxiBooking) error {
	addr, err := r.seal.EncryptToString(b.PickupAddress)
	if err != nil {
		return fmt.Errorf("encrypt pickup address: %w", err)
	}
	var flightID *string
	if b.FlightID != "" {
		flightID = &b.FlightID
	}
	return WrapNotFound(r.db.Exec(ctx, `
INSERT INTO taxi_bookings (id, member_id, flight_id, pickup_address, dropoff_address, pickup_time, estimated_arrival,
	fare_gross_minor, fare_discount_minor, fare_net_minor, currency, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)`,
		b.ID, b.MemberID, flightID, addr, b.DropoffAddress, b.PickupTime, b.EstimatedArrival,
		b.Fare.GrossMinor, b.Fare.DiscountMinor, b.Fare.NetMinor, b.Fare.Currency, string(b.Status), b.CreatedAt,
	))
}

func (r *BookingRepo) GetForMember(ctx context.Context, id, memberID string) (trip.TaxiBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM taxi_bookings WHERE id=$1 AND member_id=$2`, id, memberID)
	if err != nil {
		return trip.TaxiBooking{}, err
	}
	bs, err := r.collect(rows)
	if err != nil {
		return trip.TaxiBooking{}, err
	}
	if len(bs) == 0 {
		return trip.TaxiBooking{}, ErrNotFound
	}
	return bs[0], nil
}

func (r *BookingRepo) ListByMember(ctx context.Context, memberID string) ([]trip.TaxiBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM taxi_bookings WHERE member_id=$1 ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// LatestForFlight returns the newest booking for the flight that is not cancelled.
func (r *BookingRepo) LatestForFlight(ctx context.Context, memberID, flightID string) (*trip.TaxiBooking, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+bookingColumns+`
FROM taxi_bookings
WHERE member_id=$1 AND flight_id=$2 AND status <> 'cancelled'
ORDER BY created_at DESC
LIMIT 1`, memberID, flightID)
	if err != nil {
		return nil, err
	}
	bs, err := r.collect(rows)
	if err != nil || len(bs) == 0 {
		return nil, err
	}
	return &bs[0], nil
}

// DuePending returns pending bookings whose pickup is at or before cutoff.
func (r *BookingRepo) DuePending(ctx context.Context, cutoff time.Time, limit int) ([]trip.TaxiBooking, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+bookingColumns+`
FROM taxi_bookings
WHERE status='pending' AND pickup_time <= $1
ORDER BY pickup_time ASC
LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// SetStatus moves a booking from one status to another. It returns ErrNotFound
// when no booking with that id is currently in status from.
func (r *BookingRepo) SetStatus(ctx context.Context, id string, from, to trip.BookingStatus, lastErr *string) error {
	n, err := r.db.ExecAffected(ctx, `
UPDATE taxi_bookings SET status=$3, last_error=$4, updated_at=now()
WHERE id=$1 AND status=$2`, id, string(from), string(to), lastErr)
	if err != nil {
		return WrapNotFound(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type bookingRows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

func (r *BookingRepo) collect(rows bookingRows) ([]trip.TaxiBooking, error) {
	defer rows.Close()

	var out []trip.TaxiBooking
	for rows.Next() {
		var b trip.TaxiBooking
		var flightID *string
		var status, addr string
		if err := rows.Scan(&b.ID, &b.MemberID, &flightID, &addr, &b.DropoffAddress, &b.PickupTime, &b.EstimatedArrival,
			&b.Fare.GrossMinor, &b.Fare.DiscountMinor, &b.Fare.NetMinor, &b.Fare.Currency, &status, &b.LastError,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		if flightID != nil {
			b.FlightID = *flightID
		}
		plain, err := r.seal.DecryptString(addr)
		if err != nil {
			return nil, fmt.Errorf("decrypt pickup address for booking %s: %w", b.ID, err)
		}
		b.PickupAddress = plain
		b.Status = trip.BookingStatus(status)
		b.PickupTime = b.PickupTime.UTC()
		b.EstimatedArrival = b.EstimatedArrival.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}
