package trip

import (
	"fmt"
	"time"
)

type Tier string

const (
	TierStandard     Tier = "standard"
	TierPrestige     Tier = "prestige"
	TierPrestigePlus Tier = "prestige_plus"
)

func ParseTier(s string) (Tier, error) {
	switch t := Tier(s); t {
	case TierStandard, TierPrestige, TierPrestigePlus:
		return t, nil
	}
	return "", fmt.Errorf("unknown membership tier %q", s)
}

type Member struct {
	ID           string
	Username     string
	PasswordHash []byte
	Email        string
	FirstName    string
	LastName     string
	Tier         Tier
	CreatedAt    time.Time
}
