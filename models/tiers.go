package models

// TierCap pairs a tier identifier with the bonus cap that tier is entitled
// to. Tables are ordered by ascending tier; the last entry is the most
// permissive cap and doubles as the default when a submitted tier matches
// no known identifier.
type TierCap struct {
	// TierID is the public tier identifier tested by encrypted equality.
	TierID uint64 `json:"tier_id"`

	// Cap is the bonus ceiling in micro-units. MaxThreshold means
	// effectively uncapped.
	Cap Micro `json:"cap"`
}

// DefaultTierCaps is the cap table used when the server configuration
// supplies none.
func DefaultTierCaps() []TierCap {
	return []TierCap{
		{TierID: 1, Cap: MicroFromUnits(2_000)},
		{TierID: 2, Cap: MicroFromUnits(5_000)},
		{TierID: 3, Cap: MicroFromUnits(10_000)},
		{TierID: 4, Cap: MicroFromUnits(20_000)},
		{TierID: 5, Cap: MaxThreshold},
	}
}
