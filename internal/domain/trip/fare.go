package trip

// Fare amounts are in minor currency units (pence, cents).
type Fare struct {
	GrossMinor    int64
	DiscountMinor int64
	NetMinor      int64
	Currency      string
}

// Tariff prices an airport run from its estimated drive time and applies the
// member discount.
type Tariff struct {
	BaseMinor       int64
	PerMinuteMinor  int64
	DiscountPercent int64
	Currency        string
}

func DefaultTariff() Tariff {
	return Tariff{BaseMinor: 500, PerMinuteMinor: 100, DiscountPercent: 10, Currency: "GBP"}
}

func (t Tariff) Quote(driveMinutes int) Fare {
	if driveMinutes < 0 {
		driveMinutes = 0
	}
	gross := t.BaseMinor + t.PerMinuteMinor*int64(driveMinutes)
	discount := gross * t.DiscountPercent / 100
	return Fare{
		GrossMinor:    gross,
		DiscountMinor: discount,
		NetMinor:      gross - discount,
		Currency:      t.Currency,
	}
}

// QuoteFor prices the run for a member. Only prestige tiers get the discount.
func (t Tariff) QuoteFor(tier Tier, driveMinutes int) Fare {
	if tier == TierStandard {
		t.DiscountPercent = 0
	}
	return t.Quote(driveMinutes)
}
