package postgres

import (
	"context"

	"github.com/example/tripplanner/internal/domain/trip"
)

type MemberRepo struct{ db *DB }

func NewMemberRepo(d *DB) *MemberRepo { return &MemberRepo{db: d} }

func (r *MemberRepo) Create(ctx context.Context, m trip.Member) error {
	return WrapNotFound(r.db.Exec(ctx, `
INSERT INTO members (id, username, password_hash, email, first_name, last_name, tier, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.ID, m.Username, m.PasswordHash, m.Email, m.FirstName, m.LastName, string(m.Tier), m.CreatedAt,
	))
}

func (r *MemberRepo) GetByUsername(ctx context.Context, username string) (trip.Member, error) {
	return r.get(ctx, `WHERE username=$1`, username)
}

func (r *MemberRepo) GetByID(ctx context.Context, id string) (trip.Member, error) {
	return r.get(ctx, `WHERE id=$1`, id)
}

func (r *MemberRepo) get(ctx context.Context, where string, arg any) (trip.Member, error) {
	var m trip.Member
	var tier string
	err := r.db.QueryRow(ctx, `
SELECT id, username, password_hash, email, first_name, last_name, tier, created_at
FROM members `+where, arg).
		Scan(&m.ID, &m.Username, &m.PasswordHash, &m.Email, &m.FirstName, &m.LastName, &tier, &m.CreatedAt)
	if err != nil {
		return trip.Member{}, WrapNotFound(err)
	}
	m.Tier = trip.Tier(tier)
	return m, nil
}
