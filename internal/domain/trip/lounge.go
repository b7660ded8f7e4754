package trip

import (
	"sort"
	"strings"
)

type AccessType string

const (
	AccessIncluded AccessType = "included"
	AccessPremium  AccessType = "premium"
	AccessPartner  AccessType = "partner"
)

var accessRank = map[AccessType]int{
	AccessIncluded: 0,
	AccessPartner:  1,
	AccessPremium:  2,
}

type Lounge struct {
	ID           string
	Name         string
	AirportCode  string
	Terminal     string
	Amenities    []string
	OpeningHours string // e.g. "05:00 - 23:00"
	Description  string
	AccessType   AccessType
	Tiers        []Tier
}

func (l Lounge) AllowsTier(t Tier) bool {
	for _, lt := range l.Tiers {
		if lt == t {
			return true
		}
	}
	return false
}

// SelectLounges returns the lounges at airport that tier may enter. Lounges in the
// given terminal come first, then included before partner before premium access,
// then by name. An empty terminal skips the terminal preference.
func SelectLounges(lounges []Lounge, airport, terminal string, tier Tier) []Lounge {
	var out []Lounge
	for _, l := range lounges {
		if !strings.EqualFold(l.AirportCode, airport) || !l.AllowsTier(tier) {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if terminal != "" {
			ai, bi := a.Terminal == terminal, b.Terminal == terminal
			if ai != bi {
				return ai
			}
		}
		if accessRank[a.AccessType] != accessRank[b.AccessType] {
			return accessRank[a.AccessType] < accessRank[b.AccessType]
		}
		return a.Name < b.Name
	})
	return out
}
