package postgres

import (
	"context"

	"github.com/example/tripplanner/internal/domain/trip"
)

const flightColumns = `id, member_id, flight_number, airline, departure_airport, arrival_airport,
departure_time, arrival_time, terminal, gate, status, international`

type FlightRepo struct{ db *DB }

func NewFlightRepo(d *DB) *FlightRepo { return &FlightRepo{db: d} }

func (r *FlightRepo) Create(ctx context.Context, f trip.Flight) error {
	return WrapNotFound(r.db.Exec(ctx, `
INSERT INTO flights (`+flightColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		f.ID, f.MemberID, f.FlightNumber, f.Airline, f.DepartureAirport, f.ArrivalAirport,
		f.DepartureTime, f.ArrivalTime, f.Terminal, f.Gate, string(f.Status), f.International,
	))
}

func (r *FlightRepo) GetForMember(ctx context.Context, id, memberID string) (trip.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 AND member_id=$2`, id, memberID))
	if err != nil {
		return trip.Flight{}, WrapNotFound(err)
	}
	return f, nil
}

func (r *FlightRepo) ListByMember(ctx context.Context, memberID string) ([]trip.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE member_id=$1 ORDER BY departure_time ASC`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trip.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(row scanner) (trip.Flight, error) {
	var f trip.Flight
	var status string
	if err := row.Scan(&f.ID, &f.MemberID, &f.FlightNumber, &f.Airline, &f.DepartureAirport, &f.ArrivalAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.Terminal, &f.Gate, &status, &f.International); err != nil {
		return trip.Flight{}, err
	}
	f.Status = trip.FlightStatus(status)
	f.DepartureTime = f.DepartureTime.UTC()
	if f.ArrivalTime != nil {
		at := f.ArrivalTime.UTC()
		f.ArrivalTime = &at
	}
	return f, nil
}
