package postgres

import (
	"context"
	"strings"

	"github.com/example/tripplanner/internal/domain/trip"
)

type LoungeRepo struct{ db *DB }

func NewLoungeRepo(d *DB) *LoungeRepo { return &LoungeRepo{db: d} }

func (r *LoungeRepo) Create(ctx context.Context, l trip.Lounge) error {
	tiers := make([]string, 0, len(l.Tiers))
	for _, t := range l.Tiers {
		tiers = append(tiers, string(t))
	}
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return WrapNotFound(r.db.Exec(ctx, `
INSERT INTO lounges (id, name, airport_code, terminal, amenities, opening_hours, description, access_type, tiers)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		l.ID, l.Name, strings.ToUpper(l.AirportCode), l.Terminal, amenities, l.OpeningHours, l.Description, string(l.AccessType), tiers,
	))
}

func (r *LoungeRepo) ListByAirport(ctx context.Context, airport string) ([]trip.Lounge, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, airport_code, terminal, amenities, opening_hours, description, access_type, tiers
FROM lounges
WHERE airport_code=$1
ORDER BY name ASC`, strings.ToUpper(airport))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trip.Lounge
	for rows.Next() {
		var l trip.Lounge
		var access string
		var tiers []string
		if err := rows.Scan(&l.ID, &l.Name, &l.AirportCode, &l.Terminal, &l.Amenities, &l.OpeningHours, &l.Description, &access, &tiers); err != nil {
			return nil, err
		}
		l.AccessType = trip.AccessType(access)
		for _, t := range tiers {
			l.Tiers = append(l.Tiers, trip.Tier(t))
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
