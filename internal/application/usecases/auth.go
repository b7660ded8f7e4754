package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/tripplanner/internal/domain/trip"
	"github.com/example/tripplanner/internal/internaltypes"
)

type AuthService struct {
	Members MemberStore
}

// VerifyPassword returns the member for username when password matches. Unknown
// users and wrong passwords both yield internaltypes.ErrUnauthorized.
func (a AuthService) VerifyPassword(ctx context.Context, username, password string) (trip.Member, error) {
	m, err := a.Members.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, internaltypes.ErrNotFound) {
			return trip.Member{}, fmt.Errorf("invalid credentials: %w", internaltypes.ErrUnauthorized)
		}
		return trip.Member{}, err
	}
	if err := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password)); err != nil {
		return trip.Member{}, fmt.Errorf("invalid credentials: %w", internaltypes.ErrUnauthorized)
	}
	return m, nil
}

func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

type NewMemberInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Tier      trip.Tier
}

func NewMember(in NewMemberInput) (trip.Member, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" {
		return trip.Member{}, errors.New("username and password required")
	}
	tier := in.Tier
	if tier == "" {
		tier = trip.TierStandard
	}
	if _, err := trip.ParseTier(string(tier)); err != nil {
		return trip.Member{}, err
	}
	h, err := HashPassword(in.Password)
	if err != nil {
		return trip.Member{}, err
	}
	return trip.Member{
		ID:           "mem_" + uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: h,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Tier:         tier,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
