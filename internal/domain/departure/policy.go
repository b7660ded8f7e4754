package departure

// Policy holds the buffering constants the recommender applies. It is code-level
// configuration: callers pick a policy when constructing a Recommender.
type Policy struct {
	InternationalSecurityBufferMinutes int
	DomesticSecurityBufferMinutes      int
	PreparationBufferMinutes           int
	DefaultDriveTimeMinutes            int
}

func DefaultPolicy() Policy {
	return Policy{
		InternationalSecurityBufferMinutes: 105,
		DomesticSecurityBufferMinutes:      75,
		PreparationBufferMinutes:           15,
		DefaultDriveTimeMinutes:            45,
	}
}

// SecurityBuffer returns the security/check-in minutes for the trip type.
func (p Policy) SecurityBuffer(international bool) int {
	if international {
		return p.InternationalSecurityBufferMinutes
	}
	return p.DomesticSecurityBufferMinutes
}
